package azurehierarchy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

type staticCredential struct{}

func (staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "test-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newHierarchyService(t *testing.T, mux *http.ServeMux) *service {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	rest := azurerest.NewService(staticCredential{}, &azurerest.Options{
		BaseURL: srv.URL,
		Sleep:   func(time.Duration) {},
	})
	return NewService(rest, "2020-05-01", "2021-04-01")
}

func TestDiscoverDescendants_ClassifiesAndDedups(t *testing.T) {
	mux := http.NewServeMux()
	page2 := false
	mux.HandleFunc("/providers/Microsoft.Management/managementGroups/mg-root/descendants", func(w http.ResponseWriter, r *http.Request) {
		if !page2 {
			page2 = true
			fmt.Fprintf(w, `{
				"value": [
					{"name": "mg-child", "type": "Microsoft.Management/managementGroups", "properties": {"displayName": "Child"}},
					{"name": "sub-1", "type": "/subscriptions", "properties": {"displayName": "Prod", "tenantId": "t-1"}},
					{"name": "something", "type": "Microsoft.Other/things", "properties": {}}
				],
				"nextLink": "%s"
			}`, "http://"+r.Host+r.URL.Path+"?page=2")
			return
		}
		// second page repeats sub-1 with the same display name
		fmt.Fprint(w, `{
			"value": [
				{"name": "sub-1", "type": "/subscriptions", "properties": {"displayName": "Prod", "tenantId": "t-1"}},
				{"name": "sub-2", "type": "/subscriptions", "properties": {"displayName": "Dev", "tenantId": "t-1"}}
			]
		}`)
	})

	svc := newHierarchyService(t, mux)
	groups, subs, err := svc.DiscoverDescendants(context.Background(), "mg-root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// root is synthesized since the API never returned it
	if len(groups) != 2 {
		t.Fatalf("expected 2 management groups, got %d", len(groups))
	}
	if groups[0].ID != "mg-child" || groups[0].DisplayName != "Child" {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if groups[1].ID != "mg-root" || groups[1].DisplayName != "mg-root" {
		t.Errorf("expected synthesized root group, got %+v", groups[1])
	}

	if len(subs) != 2 {
		t.Fatalf("expected 2 deduplicated subscriptions, got %d", len(subs))
	}
	if subs[0].ID != "sub-1" || subs[0].DisplayName != "Prod" || subs[0].TenantID != "t-1" {
		t.Errorf("unexpected first subscription: %+v", subs[0])
	}
	if subs[1].ID != "sub-2" {
		t.Errorf("unexpected second subscription: %+v", subs[1])
	}
}

func TestDiscoverDescendants_FailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/providers/Microsoft.Management/managementGroups/mg-root/descendants", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	svc := newHierarchyService(t, mux)
	if _, _, err := svc.DiscoverDescendants(context.Background(), "mg-root"); err == nil {
		t.Fatal("expected discovery failure to propagate")
	}
}

func TestListResourceGroups_PreservesServerOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subscriptions/sub-1/resourcegroups", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value": [{"name": "rg-b"}, {"name": "rg-a"}, {"name": "rg-c"}]}`)
	})

	svc := newHierarchyService(t, mux)
	names, err := svc.ListResourceGroups(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"rg-b", "rg-a", "rg-c"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}
