package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/model"
)

func expenseOn(date time.Time, category, amount string) model.FinanceEntry {
	return model.FinanceEntry{
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		EntryDate: &date,
		CreatedAt: date,
	}
}

func TestAggregateMonthlyExpensesLimit(t *testing.T) {
	var entries []model.FinanceEntry
	for m := 1; m <= 5; m++ {
		entries = append(entries, expenseOn(time.Date(2026, time.Month(m), 10, 0, 0, 0, 0, time.UTC), "Food", "10.00"))
	}

	got := AggregateMonthlyExpenses(entries, 0, 0)
	if len(got) != DefaultMonthLimit {
		t.Fatalf("got %d months, want %d", len(got), DefaultMonthLimit)
	}
	// Newest first.
	want := []string{"2026-05", "2026-04", "2026-03", "2026-02"}
	for i, m := range want {
		if got[i].Month != m {
			t.Errorf("month %d = %q, want %q", i, got[i].Month, m)
		}
	}
}

func TestAggregateMonthlyExpensesTotalsAndCategories(t *testing.T) {
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	entries := []model.FinanceEntry{
		expenseOn(day, "Food", "40.00"),
		expenseOn(day, "Food", "10.00"),
		expenseOn(day, "Rent", "900.00"),
		expenseOn(day, "Fun", "20.00"),
		expenseOn(day, "Transport", "5.00"),
	}

	got := AggregateMonthlyExpenses(entries, 4, 3)
	if len(got) != 1 {
		t.Fatalf("got %d months, want 1", len(got))
	}
	m := got[0]
	if !m.Total.Equal(decimal.RequireFromString("975.00")) {
		t.Errorf("total = %s, want 975.00", m.Total)
	}
	if len(m.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(m.Categories))
	}
	if m.Categories[0].Category != "Rent" || m.Categories[1].Category != "Food" || m.Categories[2].Category != "Fun" {
		t.Errorf("categories = %v", m.Categories)
	}
	if !m.Categories[1].Total.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Food total = %s, want 50.00", m.Categories[1].Total)
	}
}

func TestAggregateMonthlyExpensesCreatedAtFallback(t *testing.T) {
	e := model.FinanceEntry{
		Category:  "Food",
		Amount:    decimal.RequireFromString("7.50"),
		CreatedAt: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	got := AggregateMonthlyExpenses([]model.FinanceEntry{e}, 4, 3)
	if len(got) != 1 || got[0].Month != "2026-07" {
		t.Errorf("got %v, want one 2026-07 bucket", got)
	}
}

func TestAggregateMonthlyExpensesUncategorized(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := AggregateMonthlyExpenses([]model.FinanceEntry{expenseOn(day, "", "3.00")}, 4, 3)
	if len(got) != 1 || got[0].Categories[0].Category != "Uncategorized" {
		t.Errorf("got %v, want Uncategorized bucket", got)
	}
}

func TestAggregateMonthlyExpensesEmpty(t *testing.T) {
	if got := AggregateMonthlyExpenses(nil, 4, 3); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
