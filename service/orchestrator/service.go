package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/elC0mpa/budget-doctor/model"
	"github.com/elC0mpa/budget-doctor/report"
	"github.com/elC0mpa/budget-doctor/service/assessment"
	azurebudgets "github.com/elC0mpa/budget-doctor/service/azure/budgets"
	azurecostquery "github.com/elC0mpa/budget-doctor/service/azure/costquery"
	azurehierarchy "github.com/elC0mpa/budget-doctor/service/azure/hierarchy"
	"github.com/elC0mpa/budget-doctor/utils"
)

func NewService(
	hierarchyService azurehierarchy.HierarchyService,
	budgetService azurebudgets.BudgetService,
	costService azurecostquery.CostQueryService,
	assessService assessment.AssessmentService,
) *service {
	return &service{
		hierarchyService: hierarchyService,
		budgetService:    budgetService,
		costService:      costService,
		assessService:    assessService,
		now:              time.Now,
	}
}

func (s *service) Orchestrate(flags model.Flags) error {
	if flags.Trend {
		return s.trendWorkflow(flags)
	}

	result, err := s.Run(context.Background(), flags)
	if err != nil {
		return err
	}

	var sheets []report.Sheet
	if flags.IncludeManagementGroups {
		sheets = append(sheets, report.Sheet{Name: "MG_Budgets", Rows: result.MGRows})
	}
	if flags.IncludeSubscriptions {
		sheets = append(sheets,
			report.Sheet{Name: "Sub_Budgets", Rows: result.SubRows},
			report.Sheet{Name: "Sub_NoBudget", Rows: result.SubNoBudgetRows},
		)
	}
	if flags.IncludeResourceGroups {
		sheets = append(sheets, report.Sheet{Name: "RG_Budgets", Rows: result.RGRows})
	}

	if err := report.WriteWorkbook(flags.OutputPath, sheets); err != nil {
		return err
	}

	utils.StopSpinner()

	counts := lo.Map(sheets, func(sheet report.Sheet, _ int) utils.SheetCount {
		return utils.SheetCount{Name: sheet.Name, Rows: len(sheet.Rows)}
	})
	utils.DrawSummaryTable(flags.RootManagementGroup, counts, len(result.Warnings), flags.OutputPath)
	return nil
}

// Run walks the hierarchy and assesses every included scope, one at a time.
// Discovery failures abort; every later failure is downgraded to a warning
// and the scope's fields stay blank.
func (s *service) Run(ctx context.Context, flags model.Flags) (*RunResult, error) {
	result := &RunResult{}
	warn := func(format string, args ...interface{}) {
		utils.Warnf(format, args...)
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	utils.Logf(flags.Verbose, "Enumerating management groups and subscriptions...")
	groups, subs, err := s.hierarchyService.DiscoverDescendants(ctx, flags.RootManagementGroup)
	if err != nil {
		return nil, err
	}

	subs = filterSubscriptions(subs, flags.SubscriptionIDs, warn)
	utils.Logf(flags.Verbose, "Management groups (including root and descendants): %d", len(groups))
	utils.Logf(flags.Verbose, "Subscriptions: %d", len(subs))

	if flags.IncludeManagementGroups {
		utils.Logf(flags.Verbose, "Processing management group budgets...")
		for i, group := range groups {
			utils.Logf(flags.Verbose, "MG %d/%d - %s", i+1, len(groups), group.ID)

			data, assess := s.fetchScopeData(ctx, model.ManagementGroupScope(group.ID), flags.Months, warn, false)
			if assess {
				result.MGRows = append(result.MGRows, s.assessService.BudgetRows(data)...)
			}
		}
	}

	if !flags.IncludeSubscriptions && !flags.IncludeResourceGroups {
		return result, nil
	}

	utils.Logf(flags.Verbose, "Processing subscriptions...")
	for i, sub := range subs {
		utils.Logf(flags.Verbose, "Subscription %d/%d - %s (%s)", i+1, len(subs), sub.DisplayName, sub.ID)

		if flags.IncludeSubscriptions {
			// subscriptions always get their costs fetched: a budget-less
			// subscription still yields a synthetic row with suggestions
			data, _ := s.fetchScopeData(ctx, model.SubscriptionScope(sub.ID, sub.DisplayName), flags.Months, warn, true)
			if len(data.Budgets) > 0 {
				result.SubRows = append(result.SubRows, s.assessService.BudgetRows(data)...)
			} else if row := s.assessService.NoBudgetRow(data); row != nil {
				result.SubNoBudgetRows = append(result.SubNoBudgetRows, *row)
			}
		}

		if flags.IncludeResourceGroups {
			s.processResourceGroups(ctx, sub, flags, warn, result)
		}
	}

	return result, nil
}

func (s *service) processResourceGroups(ctx context.Context, sub model.Subscription, flags model.Flags, warn warnFunc, result *RunResult) {
	names, err := s.hierarchyService.ListResourceGroups(ctx, sub.ID)
	if err != nil {
		warn("resource group list failed (%s): %v", sub.ID, err)
		return
	}

	if len(flags.RGNames) > 0 {
		allowed := lo.Map(flags.RGNames, func(name string, _ int) string { return strings.ToLower(name) })
		total := len(names)
		names = lo.Filter(names, func(name string, _ int) bool {
			return lo.Contains(allowed, strings.ToLower(name))
		})
		utils.Logf(flags.Verbose, "  Found %d resource groups in subscription %s, %d match the allow-list", total, sub.DisplayName, len(names))
	} else {
		utils.Logf(flags.Verbose, "  Found %d resource groups in subscription %s", len(names), sub.DisplayName)
	}

	for _, name := range names {
		data, assess := s.fetchScopeData(ctx, model.ResourceGroupScope(sub.ID, sub.DisplayName, name), flags.Months, warn, false)
		if assess {
			result.RGRows = append(result.RGRows, s.assessService.BudgetRows(data)...)
		}
	}
}

type warnFunc func(format string, args ...interface{})

// fetchScopeData issues the per-scope calls in fixed order: budgets, then
// monthly costs, then forecast. When costWithoutBudgets is false and the
// scope has no budgets the cost queries are skipped entirely and the second
// return value is false.
func (s *service) fetchScopeData(ctx context.Context, scope model.Scope, months int, warn warnFunc, costWithoutBudgets bool) (assessment.ScopeData, bool) {
	data := assessment.ScopeData{Scope: scope}

	budgets, err := s.budgetService.ListAtScope(ctx, scope.Path())
	if err != nil {
		warn("budgets fetch failed (%s): %v", scope.Path(), err)
	} else {
		data.Budgets = budgets
	}

	if len(data.Budgets) == 0 && !costWithoutBudgets {
		return data, false
	}

	series, monthErrs := s.costService.MonthlyCosts(ctx, scope.Path(), months)
	for _, monthErr := range monthErrs {
		warn("cost query failed (%s): %v", scope.Path(), monthErr)
	}
	data.Monthly = series

	forecast, err := s.costService.CurrentMonthForecast(ctx, scope.Path())
	if err != nil {
		warn("forecast failed (%s): %v", scope.Path(), err)
	} else {
		data.Forecast = forecast
	}

	return data, true
}

func filterSubscriptions(subs []model.Subscription, allowList []string, warn warnFunc) []model.Subscription {
	if len(allowList) == 0 {
		return subs
	}

	allowed := lo.Map(allowList, func(id string, _ int) string { return strings.ToLower(id) })
	kept := lo.Filter(subs, func(sub model.Subscription, _ int) bool {
		return lo.Contains(allowed, strings.ToLower(sub.ID))
	})

	found := lo.Map(kept, func(sub model.Subscription, _ int) string { return strings.ToLower(sub.ID) })
	missing, _ := lo.Difference(allowed, found)
	for _, id := range missing {
		warn("subscription %s not found under this management group", id)
	}
	return kept
}

func (s *service) trendWorkflow(flags model.Flags) error {
	months := flags.Months
	if months < 6 {
		months = 6
	}

	scope := model.ManagementGroupScope(flags.RootManagementGroup)
	windows := azurecostquery.MonthWindows(s.now(), months)
	series, monthErrs := s.costService.MonthlyCosts(context.Background(), scope.Path(), months)
	for _, monthErr := range monthErrs {
		utils.Warnf("cost query failed (%s): %v", scope.Path(), monthErr)
	}

	utils.StopSpinner()
	utils.DrawTrendChart(flags.RootManagementGroup, windows, series)
	return nil
}
