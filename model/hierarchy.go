package model

// ManagementGroup is one management group discovered under the root
type ManagementGroup struct {
	ID          string
	DisplayName string
}

// Subscription is one subscription discovered under the root management group
type Subscription struct {
	ID          string
	DisplayName string
	TenantID    string
}
