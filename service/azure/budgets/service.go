package azurebudgets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elC0mpa/budget-doctor/model"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

func NewService(rest azurerest.RestService, apiVersion string) *service {
	return &service{
		rest:       rest,
		apiVersion: apiVersion,
	}
}

// ListAtScope fetches the budgets configured at a scope. An empty result is
// the normal "no budget here" outcome, not an error.
func (s *service) ListAtScope(ctx context.Context, scopePath string) ([]model.Budget, error) {
	url := fmt.Sprintf("%s%s/providers/Microsoft.Consumption/budgets?api-version=%s",
		s.rest.BaseURL(), scopePath, s.apiVersion)

	data, err := s.rest.Call(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets at %s: %w", scopePath, err)
	}

	var list budgetList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode budgets at %s: %w", scopePath, err)
	}

	budgets := make([]model.Budget, 0, len(list.Value))
	for _, item := range list.Value {
		budget := model.Budget{
			Name:      item.Name,
			Amount:    item.Properties.Amount,
			TimeGrain: item.Properties.TimeGrain,
			StartDate: item.Properties.TimePeriod.StartDate,
			EndDate:   item.Properties.TimePeriod.EndDate,
		}
		if len(item.Properties.Notifications) > 0 {
			budget.Notifications = make(map[string]model.BudgetNotification, len(item.Properties.Notifications))
			for key, n := range item.Properties.Notifications {
				enabled := true
				if n.Enabled != nil {
					enabled = *n.Enabled
				}
				budget.Notifications[key] = model.BudgetNotification{
					Enabled:       enabled,
					ThresholdType: n.ThresholdType,
					Operator:      n.Operator,
					Threshold:     n.Threshold,
					ContactEmails: n.ContactEmails,
					ContactGroups: n.ContactGroups,
					ContactRoles:  n.ContactRoles,
				}
			}
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}
