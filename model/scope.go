package model

import "fmt"

// ScopeKind identifies the tier of a scope in the resource hierarchy
type ScopeKind string

const (
	ScopeManagementGroup ScopeKind = "MG"
	ScopeSubscription    ScopeKind = "Subscription"
	ScopeResourceGroup   ScopeKind = "ResourceGroup"
)

// Scope is one point in the hierarchy a budget can be attached to.
// Only the fields relevant to its kind are populated; a Scope is a value
// and never changes after construction.
type Scope struct {
	Kind              ScopeKind
	ManagementGroupID string
	SubscriptionID    string
	SubscriptionName  string
	ResourceGroup     string
}

func ManagementGroupScope(groupID string) Scope {
	return Scope{Kind: ScopeManagementGroup, ManagementGroupID: groupID}
}

func SubscriptionScope(subscriptionID, displayName string) Scope {
	return Scope{
		Kind:             ScopeSubscription,
		SubscriptionID:   subscriptionID,
		SubscriptionName: displayName,
	}
}

func ResourceGroupScope(subscriptionID, displayName, resourceGroup string) Scope {
	return Scope{
		Kind:             ScopeResourceGroup,
		SubscriptionID:   subscriptionID,
		SubscriptionName: displayName,
		ResourceGroup:    resourceGroup,
	}
}

// Path returns the ARM scope path used by budget and cost queries
func (s Scope) Path() string {
	switch s.Kind {
	case ScopeManagementGroup:
		return fmt.Sprintf("/providers/Microsoft.Management/managementGroups/%s", s.ManagementGroupID)
	case ScopeSubscription:
		return fmt.Sprintf("/subscriptions/%s", s.SubscriptionID)
	case ScopeResourceGroup:
		return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", s.SubscriptionID, s.ResourceGroup)
	}
	return ""
}
