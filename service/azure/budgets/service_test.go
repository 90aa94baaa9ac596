package azurebudgets

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

func newBudgetService(t *testing.T, handler http.Handler) *service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rest := azurerest.NewService(staticCredential{}, &azurerest.Options{
		BaseURL: srv.URL,
		Sleep:   func(time.Duration) {},
	})
	return NewService(rest, "2023-05-01")
}

func TestListAtScope_ParsesBudgets(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subscriptions/sub-1/providers/Microsoft.Consumption/budgets" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"value":[{
			"name": "monthly-cap",
			"properties": {
				"amount": 500,
				"timeGrain": "Monthly",
				"timePeriod": {"startDate": "2024-01-01T00:00:00Z", "endDate": "2025-01-01T00:00:00Z"},
				"notifications": {
					"actual80": {
						"thresholdType": "Actual",
						"operator": "GreaterThan",
						"threshold": 80,
						"contactEmails": ["ops@example.com", "fin@example.com"]
					}
				}
			}
		}]}`)
	})

	svc := newBudgetService(t, handler)
	budgets, err := svc.ListAtScope(context.Background(), "/subscriptions/sub-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}

	b := budgets[0]
	if b.Name != "monthly-cap" {
		t.Errorf("unexpected name: %s", b.Name)
	}
	if b.Amount == nil || *b.Amount != 500 {
		t.Errorf("unexpected amount: %v", b.Amount)
	}
	if b.TimeGrain != "Monthly" || b.StartDate != "2024-01-01T00:00:00Z" {
		t.Errorf("unexpected grain/period: %+v", b)
	}

	n, ok := b.Notifications["actual80"]
	if !ok {
		t.Fatal("expected notification actual80")
	}
	// enabled defaults to true when absent
	if !n.Enabled {
		t.Error("expected enabled to default to true")
	}
	if n.Threshold == nil || *n.Threshold != 80 {
		t.Errorf("unexpected threshold: %v", n.Threshold)
	}
	if len(n.ContactEmails) != 2 || n.ContactEmails[0] != "ops@example.com" {
		t.Errorf("unexpected contact emails: %v", n.ContactEmails)
	}
}

func TestListAtScope_EmptyIsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value":[]}`)
	})

	svc := newBudgetService(t, handler)
	budgets, err := svc.ListAtScope(context.Background(), "/subscriptions/sub-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("expected no budgets, got %d", len(budgets))
	}
}
