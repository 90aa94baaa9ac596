package azurehierarchy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elC0mpa/budget-doctor/model"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

func NewService(rest azurerest.RestService, mgAPIVersion, rgAPIVersion string) *service {
	return &service{
		rest:         rest,
		mgAPIVersion: mgAPIVersion,
		rgAPIVersion: rgAPIVersion,
	}
}

// DiscoverDescendants walks the descendants listing under rootGroupID and
// splits the entries into management groups and subscriptions. Duplicate ids
// across pages collapse to one entry; discovery order is preserved so the
// report stays deterministic. The root group itself is synthesized if the
// API does not echo it back.
func (s *service) DiscoverDescendants(ctx context.Context, rootGroupID string) ([]model.ManagementGroup, []model.Subscription, error) {
	url := fmt.Sprintf("%s/providers/Microsoft.Management/managementGroups/%s/descendants?api-version=%s",
		s.rest.BaseURL(), rootGroupID, s.mgAPIVersion)

	var groups []model.ManagementGroup
	var subs []model.Subscription
	groupIndex := make(map[string]int)
	subIndex := make(map[string]int)

	err := s.rest.Paginate(ctx, url, func(raw json.RawMessage) error {
		var item descendantItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("failed to decode descendant: %w", err)
		}
		if item.Name == "" {
			return nil
		}

		switch itemType := strings.ToLower(item.Type); {
		case strings.HasSuffix(itemType, "/subscriptions"):
			sub := model.Subscription{
				ID:          item.Name,
				DisplayName: item.Properties.DisplayName,
				TenantID:    item.Properties.TenantID,
			}
			if i, ok := subIndex[item.Name]; ok {
				subs[i] = sub
			} else {
				subIndex[item.Name] = len(subs)
				subs = append(subs, sub)
			}
		case strings.HasSuffix(itemType, "/managementgroups"):
			group := model.ManagementGroup{
				ID:          item.Name,
				DisplayName: item.Properties.DisplayName,
			}
			if i, ok := groupIndex[item.Name]; ok {
				groups[i] = group
			} else {
				groupIndex[item.Name] = len(groups)
				groups = append(groups, group)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list descendants of %s: %w", rootGroupID, err)
	}

	if _, ok := groupIndex[rootGroupID]; !ok {
		groups = append(groups, model.ManagementGroup{ID: rootGroupID, DisplayName: rootGroupID})
	}

	return groups, subs, nil
}

// ListResourceGroups returns the resource group names of a subscription in
// server order
func (s *service) ListResourceGroups(ctx context.Context, subscriptionID string) ([]string, error) {
	url := fmt.Sprintf("%s/subscriptions/%s/resourcegroups?api-version=%s",
		s.rest.BaseURL(), subscriptionID, s.rgAPIVersion)

	var names []string
	err := s.rest.Paginate(ctx, url, func(raw json.RawMessage) error {
		var item resourceGroupItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("failed to decode resource group: %w", err)
		}
		if item.Name != "" {
			names = append(names, item.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resource groups of %s: %w", subscriptionID, err)
	}
	return names, nil
}
