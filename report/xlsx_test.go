package report

import (
	"path/filepath"
	"testing"

	"github.com/elC0mpa/budget-doctor/model"
	"github.com/xuri/excelize/v2"
)

func fp(v float64) *float64 { return &v }

func TestWriteWorkbook_OmitsEmptySheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	sheets := []Sheet{
		{Name: "MG_Budgets"},
		{Name: "Sub_Budgets", Rows: []model.ReportRow{
			{ScopeType: "Subscription", ScopeID: "/subscriptions/sub-1", BudgetName: "cap", BudgetAmount: fp(500)},
			{ScopeType: "Subscription", ScopeID: "/subscriptions/sub-2", BudgetName: "cap2"},
		}},
		{Name: "Sub_NoBudget", Rows: []model.ReportRow{
			{ScopeType: "Subscription", ScopeID: "/subscriptions/sub-3"},
		}},
		{Name: "RG_Budgets"},
	}

	if err := WriteWorkbook(path, sheets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	want := []string{"Sub_Budgets", "Sub_NoBudget"}
	if len(names) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("sheet %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	rows, err := f.GetRows("Sub_Budgets")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ScopeType" || rows[0][len(model.ReportColumns)-1] != "SuggestionNote" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "/subscriptions/sub-1" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
}

func TestWriteWorkbook_AllEmptyStillWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	if err := WriteWorkbook(path, []Sheet{{Name: "MG_Budgets"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if len(f.GetSheetList()) != 1 {
		t.Errorf("expected the default sheet to remain, got %v", f.GetSheetList())
	}
}
