package assessment

import (
	"github.com/elC0mpa/budget-doctor/model"
)

// Config holds the suggestion constants so the engine stays testable with
// injected values
type Config struct {
	HeadroomPct float64
	RoundTo     float64
}

type service struct {
	cfg Config
}

type AssessmentService interface {
	BudgetRows(data ScopeData) []model.ReportRow
	NoBudgetRow(data ScopeData) *model.ReportRow
	BudgetAccuracy(budget, actual float64) float64
	SuggestedBudget(value float64, priorTwoMonths []float64) float64
}

// ScopeData is everything fetched for one scope, already degraded: a failed
// fetch shows up as an empty budget list, nil series entries or a nil
// forecast, and the engine renders those as blank fields.
type ScopeData struct {
	Scope    model.Scope
	Budgets  []model.Budget
	Monthly  model.MonthlySeries
	Forecast *float64
}
