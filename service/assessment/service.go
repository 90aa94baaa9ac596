package assessment

import (
	"math"
	"sort"
	"strings"

	"github.com/elC0mpa/budget-doctor/model"
)

const suggestionNote = "Suggestions = max(value, 3-mo avg) + 10 percent headroom, rounded."
const noBudgetNote = "No budget configured at this scope. " + suggestionNote

func NewService(cfg Config) *service {
	return &service{cfg: cfg}
}

// BudgetAccuracy measures how close a budget was to the actual spend.
// Both values at or below zero count as a perfect match, exactly one does
// as a total mismatch.
func (s *service) BudgetAccuracy(budget, actual float64) float64 {
	if budget <= 0 && actual <= 0 {
		return 1.0
	}
	if budget <= 0 || actual <= 0 {
		return 0.0
	}
	return 1.0 - math.Abs(budget-actual)/math.Max(budget, actual)
}

// SuggestedBudget never proposes below the latest signal or the rolling
// average, adds headroom, and rounds up to a human-friendly multiple
func (s *service) SuggestedBudget(value float64, priorTwoMonths []float64) float64 {
	total := value
	for _, v := range priorTwoMonths {
		total += v
	}
	baseline := math.Max(value, total/float64(1+len(priorTwoMonths)))

	suggestion := baseline * (1.0 + s.cfg.HeadroomPct)
	if s.cfg.RoundTo > 0 {
		suggestion = math.Ceil(suggestion/s.cfg.RoundTo) * s.cfg.RoundTo
	}
	return round2(suggestion)
}

// FlattenNotifications turns a budget's notification mapping into an ordered
// condition list, sorted by threshold type then ascending threshold percent
// (missing percent sorts as zero)
func FlattenNotifications(notifications map[string]model.BudgetNotification) []model.NotificationCondition {
	conditions := make([]model.NotificationCondition, 0, len(notifications))
	for key, n := range notifications {
		conditions = append(conditions, model.NotificationCondition{
			Key:              key,
			Enabled:          n.Enabled,
			ThresholdType:    n.ThresholdType,
			Operator:         n.Operator,
			ThresholdPercent: n.Threshold,
			ContactEmails:    strings.Join(n.ContactEmails, ";"),
			ContactGroups:    strings.Join(n.ContactGroups, ";"),
			ContactRoles:     strings.Join(n.ContactRoles, ";"),
		})
	}

	sort.SliceStable(conditions, func(i, j int) bool {
		if conditions[i].ThresholdType != conditions[j].ThresholdType {
			return conditions[i].ThresholdType < conditions[j].ThresholdType
		}
		return percentOrZero(conditions[i]) < percentOrZero(conditions[j])
	})
	return conditions
}

// ForecastWillTrigger predicts whether a forecast-type condition would fire.
// Non-forecast conditions and missing operands stay unknown, never false.
func ForecastWillTrigger(condition model.NotificationCondition, forecastPercentOfBudget *float64) *bool {
	if !strings.HasPrefix(strings.ToLower(condition.ThresholdType), "forecast") {
		return nil
	}
	if forecastPercentOfBudget == nil || condition.ThresholdPercent == nil {
		return nil
	}
	triggered := *forecastPercentOfBudget >= *condition.ThresholdPercent
	return &triggered
}

// BudgetRows emits one row per (budget, flattened condition), or a single
// row with empty condition fields for a budget without notifications
func (s *service) BudgetRows(data ScopeData) []model.ReportRow {
	last := data.Monthly.Last()
	priorTwo := data.Monthly.PriorTwo()

	var rows []model.ReportRow
	for _, budget := range data.Budgets {
		rows = append(rows, s.rowsForBudget(data, budget, last, priorTwo)...)
	}
	return rows
}

func (s *service) rowsForBudget(data ScopeData, budget model.Budget, last *float64, priorTwo []float64) []model.ReportRow {
	base := model.ReportRow{
		ScopeType:                 string(data.Scope.Kind),
		ScopeID:                   data.Scope.Path(),
		SubscriptionName:          data.Scope.SubscriptionName,
		SubscriptionID:            data.Scope.SubscriptionID,
		ResourceGroup:             data.Scope.ResourceGroup,
		BudgetName:                budget.Name,
		BudgetTimeGrain:           budget.TimeGrain,
		BudgetStartDate:           budget.StartDate,
		BudgetEndDate:             budget.EndDate,
		LastMonthCost:             last,
		CurrentMonthForecastTotal: data.Forecast,
		SuggestionNote:            suggestionNote,
	}
	fillPriorMonths(&base, priorTwo)

	if budget.Amount != nil {
		base.BudgetAmount = float64Ptr(round2(*budget.Amount))
	}

	hasAmount := budget.Amount != nil && *budget.Amount != 0
	if last != nil && hasAmount {
		base.BudgetAccuracy = float64Ptr(round4(s.BudgetAccuracy(*budget.Amount, *last)))
		if *last != 0 {
			base.PercentOfBudgetLastMonth = float64Ptr(round2(*last / *budget.Amount * 100))
		}
	}
	if data.Forecast != nil && *data.Forecast != 0 && hasAmount {
		base.ForecastPercentOfBudget = float64Ptr(round2(*data.Forecast / *budget.Amount * 100))
	}

	if last != nil {
		base.SuggestedBudgetActualBased = float64Ptr(s.SuggestedBudget(*last, priorTwo))
	}
	if data.Forecast != nil {
		base.SuggestedBudgetForecastBased = float64Ptr(s.SuggestedBudget(*data.Forecast, priorTwo))
	}

	conditions := FlattenNotifications(budget.Notifications)
	if len(conditions) == 0 {
		return []model.ReportRow{base}
	}

	rows := make([]model.ReportRow, 0, len(conditions))
	for _, condition := range conditions {
		row := base
		row.ConditionKey = condition.Key
		row.ThresholdType = condition.ThresholdType
		row.Operator = condition.Operator
		row.ThresholdPercent = condition.ThresholdPercent
		enabled := condition.Enabled
		row.Enabled = &enabled
		row.ContactEmails = condition.ContactEmails
		row.ContactGroups = condition.ContactGroups
		row.ContactRoles = condition.ContactRoles
		row.ForecastConditionWillTrigger = ForecastWillTrigger(condition, base.ForecastPercentOfBudget)
		rows = append(rows, row)
	}
	return rows
}

// NoBudgetRow builds the synthetic row for a scope without any budget.
// Only subscription-tier scopes get one; other tiers are skipped.
func (s *service) NoBudgetRow(data ScopeData) *model.ReportRow {
	if data.Scope.Kind != model.ScopeSubscription {
		return nil
	}

	last := data.Monthly.Last()
	priorTwo := data.Monthly.PriorTwo()

	row := model.ReportRow{
		ScopeType:                 string(data.Scope.Kind),
		ScopeID:                   data.Scope.Path(),
		SubscriptionName:          data.Scope.SubscriptionName,
		SubscriptionID:            data.Scope.SubscriptionID,
		LastMonthCost:             last,
		CurrentMonthForecastTotal: data.Forecast,
		SuggestionNote:            noBudgetNote,
	}
	fillPriorMonths(&row, priorTwo)

	if last != nil {
		row.SuggestedBudgetActualBased = float64Ptr(s.SuggestedBudget(*last, priorTwo))
	}
	if data.Forecast != nil {
		row.SuggestedBudgetForecastBased = float64Ptr(s.SuggestedBudget(*data.Forecast, priorTwo))
	}
	return &row
}

func fillPriorMonths(row *model.ReportRow, priorTwo []float64) {
	if len(priorTwo) > 0 {
		row.PrevMonthCost = float64Ptr(priorTwo[0])
	}
	if len(priorTwo) > 1 {
		row.Prev2MonthCost = float64Ptr(priorTwo[1])
	}
}

func percentOrZero(c model.NotificationCondition) float64 {
	if c.ThresholdPercent == nil {
		return 0
	}
	return *c.ThresholdPercent
}

func float64Ptr(v float64) *float64 {
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
