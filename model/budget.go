package model

// Budget is a read-only snapshot of one configured budget at a scope
type Budget struct {
	Name          string
	Amount        *float64
	TimeGrain     string
	StartDate     string
	EndDate       string
	Notifications map[string]BudgetNotification
}

// BudgetNotification is the raw notification mapping attached to a budget,
// keyed by the map key it was configured under
type BudgetNotification struct {
	Enabled       bool
	ThresholdType string
	Operator      string
	Threshold     *float64
	ContactEmails []string
	ContactGroups []string
	ContactRoles  []string
}

// NotificationCondition is a flattened budget notification, ready for a
// report row. Contact lists are ";"-joined in their configured order.
type NotificationCondition struct {
	Key              string
	Enabled          bool
	ThresholdType    string
	Operator         string
	ThresholdPercent *float64
	ContactEmails    string
	ContactGroups    string
	ContactRoles     string
}
