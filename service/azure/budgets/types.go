package azurebudgets

import (
	"context"

	"github.com/elC0mpa/budget-doctor/model"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

type service struct {
	rest       azurerest.RestService
	apiVersion string
}

type BudgetService interface {
	ListAtScope(ctx context.Context, scopePath string) ([]model.Budget, error)
}

// wire shapes of the Consumption budgets listing

type budgetList struct {
	Value []budgetItem `json:"value"`
}

type budgetItem struct {
	Name       string `json:"name"`
	Properties struct {
		Amount     *float64 `json:"amount"`
		TimeGrain  string   `json:"timeGrain"`
		TimePeriod struct {
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		} `json:"timePeriod"`
		Notifications map[string]notificationItem `json:"notifications"`
	} `json:"properties"`
}

type notificationItem struct {
	Enabled       *bool    `json:"enabled"`
	ThresholdType string   `json:"thresholdType"`
	Operator      string   `json:"operator"`
	Threshold     *float64 `json:"threshold"`
	ContactEmails []string `json:"contactEmails"`
	ContactGroups []string `json:"contactGroups"`
	ContactRoles  []string `json:"contactRoles"`
}
