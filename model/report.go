package model

// ReportRow is one line of the assessment report: a (scope, budget,
// notification condition) combination, or a synthetic no-budget line.
// Pointer fields render as blank cells when nil.
type ReportRow struct {
	ScopeType        string
	ScopeID          string
	SubscriptionName string
	SubscriptionID   string
	ResourceGroup    string

	BudgetName      string
	BudgetAmount    *float64
	BudgetTimeGrain string
	BudgetStartDate string
	BudgetEndDate   string

	ConditionKey     string
	ThresholdType    string
	Operator         string
	ThresholdPercent *float64
	Enabled          *bool
	ContactEmails    string
	ContactGroups    string
	ContactRoles     string

	LastMonthCost            *float64
	PrevMonthCost            *float64
	Prev2MonthCost           *float64
	PercentOfBudgetLastMonth *float64
	BudgetAccuracy           *float64

	CurrentMonthForecastTotal    *float64
	ForecastPercentOfBudget      *float64
	ForecastConditionWillTrigger *bool

	SuggestedBudgetActualBased   *float64
	SuggestedBudgetForecastBased *float64
	SuggestionNote               string
}

// ReportColumns is the fixed column order shared by every sheet
var ReportColumns = []string{
	"ScopeType",
	"ScopeId",
	"SubscriptionName",
	"SubscriptionId",
	"ResourceGroup",
	"BudgetName",
	"BudgetAmount",
	"BudgetTimeGrain",
	"BudgetStartDate",
	"BudgetEndDate",
	"ConditionKey",
	"ThresholdType",
	"Operator",
	"ThresholdPercent",
	"Enabled",
	"ContactEmails",
	"ContactGroups",
	"ContactRoles",
	"LastMonthCost",
	"PrevMonthCost",
	"Prev2MonthCost",
	"PercentOfBudgetLastMonth",
	"BudgetAccuracy",
	"CurrentMonthForecastTotal",
	"ForecastPercentOfBudget",
	"ForecastConditionWillTrigger",
	"SuggestedBudget_ActualBased",
	"SuggestedBudget_ForecastBased",
	"SuggestionNote",
}

// Cells returns the row values in ReportColumns order, with blank strings
// standing in for absent data
func (r ReportRow) Cells() []interface{} {
	return []interface{}{
		r.ScopeType,
		r.ScopeID,
		r.SubscriptionName,
		r.SubscriptionID,
		r.ResourceGroup,
		r.BudgetName,
		floatCell(r.BudgetAmount),
		r.BudgetTimeGrain,
		r.BudgetStartDate,
		r.BudgetEndDate,
		r.ConditionKey,
		r.ThresholdType,
		r.Operator,
		floatCell(r.ThresholdPercent),
		boolCell(r.Enabled),
		r.ContactEmails,
		r.ContactGroups,
		r.ContactRoles,
		floatCell(r.LastMonthCost),
		floatCell(r.PrevMonthCost),
		floatCell(r.Prev2MonthCost),
		floatCell(r.PercentOfBudgetLastMonth),
		floatCell(r.BudgetAccuracy),
		floatCell(r.CurrentMonthForecastTotal),
		floatCell(r.ForecastPercentOfBudget),
		boolCell(r.ForecastConditionWillTrigger),
		floatCell(r.SuggestedBudgetActualBased),
		floatCell(r.SuggestedBudgetForecastBased),
		r.SuggestionNote,
	}
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func boolCell(v *bool) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
