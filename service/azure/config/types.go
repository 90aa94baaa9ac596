package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

type service struct {
	credential *azidentity.DefaultAzureCredential
	tuning     Tuning
}

type ConfigService interface {
	GetCredential() *azidentity.DefaultAzureCredential
	GetTuning() Tuning
}

// Tuning carries the remote API versions and assessment constants. Values
// not set in the optional config file keep their defaults, so the rest of
// the code never sees a zero version string.
type Tuning struct {
	APIVersions struct {
		ManagementGroups string `yaml:"managementGroups"`
		ResourceGroups   string `yaml:"resourceGroups"`
		Budgets          string `yaml:"budgets"`
		CostQuery        string `yaml:"costQuery"`
	} `yaml:"apiVersions"`

	MaxRetries  int     `yaml:"maxRetries"`
	HeadroomPct float64 `yaml:"headroomPct"`
	RoundTo     float64 `yaml:"roundTo"`
}
