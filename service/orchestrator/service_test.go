package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/elC0mpa/budget-doctor/model"
	"github.com/elC0mpa/budget-doctor/service/assessment"
	azurebudgets "github.com/elC0mpa/budget-doctor/service/azure/budgets"
	azurecostquery "github.com/elC0mpa/budget-doctor/service/azure/costquery"
	azurehierarchy "github.com/elC0mpa/budget-doctor/service/azure/hierarchy"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

type staticCredential struct{}

func (staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "test-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeARM serves a small but complete hierarchy:
//   - mg-root (echoed back) and mg-a, where mg-a carries a budget with two
//     notifications and mg-root carries none
//   - sub-1 with a notification-less budget, sub-2 without any budget
//   - resource group listing succeeds for sub-1 (one budget-less RG) and is
//     forbidden for sub-2
func fakeARM(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/providers/Microsoft.Management/managementGroups/mg-root/descendants":
			fmt.Fprint(w, `{"value":[
				{"name":"mg-root","type":"Microsoft.Management/managementGroups","properties":{"displayName":"Root"}},
				{"name":"mg-a","type":"Microsoft.Management/managementGroups","properties":{"displayName":"Team A"}},
				{"name":"sub-1","type":"/subscriptions","properties":{"displayName":"Prod","tenantId":"t-1"}},
				{"name":"sub-2","type":"/subscriptions","properties":{"displayName":"Dev","tenantId":"t-1"}}
			]}`)

		case strings.HasSuffix(path, "/providers/Microsoft.Consumption/budgets"):
			switch {
			case strings.Contains(path, "managementGroups/mg-a/"):
				fmt.Fprint(w, `{"value":[{
					"name":"mg-a-cap",
					"properties":{
						"amount":1000,"timeGrain":"Monthly",
						"timePeriod":{"startDate":"2024-01-01T00:00:00Z"},
						"notifications":{
							"actual80":{"enabled":true,"thresholdType":"Actual","operator":"GreaterThan","threshold":80},
							"fc90":{"enabled":true,"thresholdType":"Forecasted","operator":"GreaterThan","threshold":90}
						}
					}
				}]}`)
			case strings.Contains(path, "/subscriptions/sub-1/") && !strings.Contains(path, "resourceGroups"):
				fmt.Fprint(w, `{"value":[{
					"name":"sub-1-cap",
					"properties":{"amount":500,"timeGrain":"Monthly","timePeriod":{"startDate":"2024-01-01T00:00:00Z"}}
				}]}`)
			default:
				fmt.Fprint(w, `{"value":[]}`)
			}

		case strings.HasSuffix(path, "/providers/Microsoft.CostManagement/query"):
			fmt.Fprint(w, `{"properties":{
				"columns":[{"name":"Cost"},{"name":"UsageDate"},{"name":"IsForecast"}],
				"rows":[[100.0,20240601,false],[150.0,20240615,true]]
			}}`)

		case path == "/subscriptions/sub-1/resourcegroups":
			fmt.Fprint(w, `{"value":[{"name":"rg-app"}]}`)

		case path == "/subscriptions/sub-2/resourcegroups":
			http.Error(w, "forbidden", http.StatusForbidden)

		default:
			t.Errorf("unexpected request: %s", path)
			http.NotFound(w, r)
		}
	})
}

func newRunService(t *testing.T) *service {
	t.Helper()
	srv := httptest.NewServer(fakeARM(t))
	t.Cleanup(srv.Close)

	rest := azurerest.NewService(staticCredential{}, &azurerest.Options{
		BaseURL: srv.URL,
		Sleep:   func(time.Duration) {},
	})
	return NewService(
		azurehierarchy.NewService(rest, "2020-05-01", "2021-04-01"),
		azurebudgets.NewService(rest, "2023-05-01"),
		azurecostquery.NewService(rest, "2023-03-01"),
		assessment.NewService(assessment.Config{HeadroomPct: 0.10, RoundTo: 100}),
	)
}

func allTiers() model.Flags {
	return model.Flags{
		RootManagementGroup:     "mg-root",
		Months:                  2,
		IncludeManagementGroups: true,
		IncludeSubscriptions:    true,
		IncludeResourceGroups:   true,
	}
}

func TestRun_RowGroupsAndIsolation(t *testing.T) {
	svc := newRunService(t)

	result, err := svc.Run(context.Background(), allTiers())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mg-a's budget has two notifications; mg-root has none and yields no row
	if len(result.MGRows) != 2 {
		t.Fatalf("expected 2 MG rows, got %d", len(result.MGRows))
	}
	for _, row := range result.MGRows {
		if row.BudgetName != "mg-a-cap" {
			t.Errorf("unexpected MG budget name: %q", row.BudgetName)
		}
	}

	if len(result.SubRows) != 1 {
		t.Fatalf("expected 1 subscription row, got %d", len(result.SubRows))
	}
	if result.SubRows[0].SubscriptionID != "sub-1" || result.SubRows[0].BudgetName != "sub-1-cap" {
		t.Errorf("unexpected subscription row: %+v", result.SubRows[0])
	}
	if result.SubRows[0].LastMonthCost == nil || *result.SubRows[0].LastMonthCost != 250 {
		t.Errorf("unexpected last month cost: %v", result.SubRows[0].LastMonthCost)
	}
	// forecast sums only the forecast-flagged row
	if result.SubRows[0].CurrentMonthForecastTotal == nil || *result.SubRows[0].CurrentMonthForecastTotal != 150 {
		t.Errorf("unexpected forecast total: %v", result.SubRows[0].CurrentMonthForecastTotal)
	}

	if len(result.SubNoBudgetRows) != 1 {
		t.Fatalf("expected 1 no-budget row, got %d", len(result.SubNoBudgetRows))
	}
	if result.SubNoBudgetRows[0].SubscriptionID != "sub-2" {
		t.Errorf("unexpected no-budget subscription: %+v", result.SubNoBudgetRows[0])
	}

	// rg-app has no budget and therefore no row
	if len(result.RGRows) != 0 {
		t.Errorf("expected no RG rows, got %d", len(result.RGRows))
	}

	// sub-2's forbidden RG listing is downgraded, not fatal
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "sub-2") {
		t.Errorf("expected a single warning about sub-2, got %v", result.Warnings)
	}
}

func TestRun_Deterministic(t *testing.T) {
	svc := newRunService(t)

	first, err := svc.Run(context.Background(), allTiers())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Run(context.Background(), allTiers())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs against unchanged remote state must produce identical results")
	}
}

func TestRun_SubscriptionAllowList(t *testing.T) {
	svc := newRunService(t)

	flags := allTiers()
	flags.IncludeManagementGroups = false
	flags.IncludeResourceGroups = false
	flags.SubscriptionIDs = []string{"SUB-2", "sub-gone"}

	result, err := svc.Run(context.Background(), flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.SubRows) != 0 || len(result.SubNoBudgetRows) != 1 {
		t.Errorf("expected only sub-2's no-budget row, got %+v", result)
	}

	foundMissing := false
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "sub-gone") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("expected a warning about the unknown allow-listed subscription, got %v", result.Warnings)
	}
}

func TestRun_DiscoveryFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	rest := azurerest.NewService(staticCredential{}, &azurerest.Options{
		BaseURL: srv.URL,
		Sleep:   func(time.Duration) {},
	})
	svc := NewService(
		azurehierarchy.NewService(rest, "2020-05-01", "2021-04-01"),
		azurebudgets.NewService(rest, "2023-05-01"),
		azurecostquery.NewService(rest, "2023-03-01"),
		assessment.NewService(assessment.Config{HeadroomPct: 0.10, RoundTo: 100}),
	)

	if _, err := svc.Run(context.Background(), allTiers()); err == nil {
		t.Fatal("expected discovery failure to abort the run")
	}
}
