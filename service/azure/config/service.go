package azureconfig

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/yaml.v3"
)

// DefaultTuning returns the API versions and assessment constants used when
// no config file is given
func DefaultTuning() Tuning {
	var t Tuning
	t.APIVersions.ManagementGroups = "2020-05-01"
	t.APIVersions.ResourceGroups = "2021-04-01"
	t.APIVersions.Budgets = "2023-05-01"
	t.APIVersions.CostQuery = "2023-03-01"
	t.MaxRetries = 6
	t.HeadroomPct = 0.10
	t.RoundTo = 100
	return t
}

func NewService(configPath string) (*service, error) {
	// DefaultAzureCredential supports environment variables, managed
	// identity, Azure CLI and Azure PowerShell logins
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	tuning := DefaultTuning()
	if configPath != "" {
		if err := loadTuning(configPath, &tuning); err != nil {
			return nil, err
		}
	}

	return &service{
		credential: credential,
		tuning:     tuning,
	}, nil
}

func loadTuning(path string, tuning *Tuning) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (s *service) GetCredential() *azidentity.DefaultAzureCredential {
	return s.credential
}

func (s *service) GetTuning() Tuning {
	return s.tuning
}
