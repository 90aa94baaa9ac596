package orchestrator

import (
	"time"

	"github.com/elC0mpa/budget-doctor/model"
	"github.com/elC0mpa/budget-doctor/service/assessment"
	azurebudgets "github.com/elC0mpa/budget-doctor/service/azure/budgets"
	azurecostquery "github.com/elC0mpa/budget-doctor/service/azure/costquery"
	azurehierarchy "github.com/elC0mpa/budget-doctor/service/azure/hierarchy"
)

type service struct {
	hierarchyService azurehierarchy.HierarchyService
	budgetService    azurebudgets.BudgetService
	costService      azurecostquery.CostQueryService
	assessService    assessment.AssessmentService

	now func() time.Time
}

// RunResult collects the row groups of one assessment pass, in discovery
// order, plus the per-scope warnings that were downgraded along the way
type RunResult struct {
	MGRows          []model.ReportRow
	SubRows         []model.ReportRow
	SubNoBudgetRows []model.ReportRow
	RGRows          []model.ReportRow
	Warnings        []string
}
