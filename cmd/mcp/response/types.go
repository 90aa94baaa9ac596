package response

// AzureSubscription represents a subscription visible to the credential
type AzureSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// BudgetInfo represents a single configured budget at a scope
type BudgetInfo struct {
	Name          string   `json:"name"`
	Amount        *float64 `json:"amount,omitempty"`
	TimeGrain     string   `json:"time_grain,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	Notifications int      `json:"notifications"`
}

// BudgetSuggestion represents a suggested budget amount for given spend inputs
type BudgetSuggestion struct {
	LastMonthCost   float64   `json:"last_month_cost"`
	PriorMonths     []float64 `json:"prior_months"`
	SuggestedBudget float64   `json:"suggested_budget"`
}

// BudgetRowSummary is a trimmed assessment row, small enough to return over
// MCP without the notification detail columns
type BudgetRowSummary struct {
	ScopeType                    string   `json:"scope_type"`
	ScopeID                      string   `json:"scope_id"`
	SubscriptionID               string   `json:"subscription_id,omitempty"`
	ResourceGroup                string   `json:"resource_group,omitempty"`
	BudgetName                   string   `json:"budget_name,omitempty"`
	BudgetAmount                 *float64 `json:"budget_amount,omitempty"`
	LastMonthCost                *float64 `json:"last_month_cost,omitempty"`
	PercentOfBudgetLastMonth     *float64 `json:"percent_of_budget_last_month,omitempty"`
	BudgetAccuracy               *float64 `json:"budget_accuracy,omitempty"`
	CurrentMonthForecastTotal    *float64 `json:"current_month_forecast_total,omitempty"`
	SuggestedBudgetActualBased   *float64 `json:"suggested_budget_actual_based,omitempty"`
	SuggestedBudgetForecastBased *float64 `json:"suggested_budget_forecast_based,omitempty"`
}

// AssessmentSummary represents one full assessment pass over the hierarchy
type AssessmentSummary struct {
	RootManagementGroup   string             `json:"root_management_group"`
	ManagementGroupRows   []BudgetRowSummary `json:"management_group_rows"`
	SubscriptionRows      []BudgetRowSummary `json:"subscription_rows"`
	NoBudgetSubscriptions []BudgetRowSummary `json:"no_budget_subscriptions"`
	ResourceGroupRows     []BudgetRowSummary `json:"resource_group_rows"`
	Warnings              []string           `json:"warnings"`
}
