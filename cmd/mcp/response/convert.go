package response

import (
	"github.com/elC0mpa/budget-doctor/model"
	"github.com/elC0mpa/budget-doctor/service/orchestrator"
)

// ConvertRows converts internal report rows to MCP response format
func ConvertRows(rows []model.ReportRow) []BudgetRowSummary {
	summaries := make([]BudgetRowSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, BudgetRowSummary{
			ScopeType:                    row.ScopeType,
			ScopeID:                      row.ScopeID,
			SubscriptionID:               row.SubscriptionID,
			ResourceGroup:                row.ResourceGroup,
			BudgetName:                   row.BudgetName,
			BudgetAmount:                 row.BudgetAmount,
			LastMonthCost:                row.LastMonthCost,
			PercentOfBudgetLastMonth:     row.PercentOfBudgetLastMonth,
			BudgetAccuracy:               row.BudgetAccuracy,
			CurrentMonthForecastTotal:    row.CurrentMonthForecastTotal,
			SuggestedBudgetActualBased:   row.SuggestedBudgetActualBased,
			SuggestedBudgetForecastBased: row.SuggestedBudgetForecastBased,
		})
	}
	return summaries
}

// ConvertRunResult converts an assessment pass to MCP response format
func ConvertRunResult(rootGroupID string, result *orchestrator.RunResult) AssessmentSummary {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return AssessmentSummary{
		RootManagementGroup:   rootGroupID,
		ManagementGroupRows:   ConvertRows(result.MGRows),
		SubscriptionRows:      ConvertRows(result.SubRows),
		NoBudgetSubscriptions: ConvertRows(result.SubNoBudgetRows),
		ResourceGroupRows:     ConvertRows(result.RGRows),
		Warnings:              warnings,
	}
}

// ConvertBudgets converts internal budgets to MCP response format
func ConvertBudgets(budgets []model.Budget) []BudgetInfo {
	infos := make([]BudgetInfo, 0, len(budgets))
	for _, budget := range budgets {
		infos = append(infos, BudgetInfo{
			Name:          budget.Name,
			Amount:        budget.Amount,
			TimeGrain:     budget.TimeGrain,
			StartDate:     budget.StartDate,
			EndDate:       budget.EndDate,
			Notifications: len(budget.Notifications),
		})
	}
	return infos
}
