package azurehierarchy

import (
	"context"

	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
	"github.com/elC0mpa/budget-doctor/model"
)

type service struct {
	rest         azurerest.RestService
	mgAPIVersion string
	rgAPIVersion string
}

type HierarchyService interface {
	DiscoverDescendants(ctx context.Context, rootGroupID string) ([]model.ManagementGroup, []model.Subscription, error)
	ListResourceGroups(ctx context.Context, subscriptionID string) ([]string, error)
}

// descendantItem is the wire shape of one entry in the descendants listing
type descendantItem struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Properties struct {
		DisplayName string `json:"displayName"`
		TenantID    string `json:"tenantId"`
	} `json:"properties"`
}

type resourceGroupItem struct {
	Name string `json:"name"`
}
