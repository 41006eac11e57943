package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/model"
)

func entry(paidBy int64, amount string) model.FinanceEntry {
	return model.FinanceEntry{
		PaidBy:    paidBy,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: time.Now(),
	}
}

func balanceSum(balances []MemberBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	return sum
}

func findBalance(t *testing.T, balances []MemberBalance, memberID int64) decimal.Decimal {
	t.Helper()
	for _, b := range balances {
		if b.MemberID == memberID {
			return b.Balance
		}
	}
	t.Fatalf("no balance for member %d", memberID)
	return decimal.Zero
}

func TestBalancesEvenSplit(t *testing.T) {
	entries := []model.FinanceEntry{entry(1, "30.00")}
	balances := ComputeBalancesByMember(entries, []int64{1, 2, 3})

	if got := findBalance(t, balances, 1); !got.Equal(decimal.RequireFromString("20")) {
		t.Errorf("payer balance = %s, want 20", got)
	}
	if got := findBalance(t, balances, 2); !got.Equal(decimal.RequireFromString("-10")) {
		t.Errorf("member 2 balance = %s, want -10", got)
	}
	if !balanceSum(balances).IsZero() {
		t.Errorf("sum = %s, want 0", balanceSum(balances))
	}
}

func TestBalancesSumToZeroWithRounding(t *testing.T) {
	// 10.00 across 3 members does not divide evenly in cents.
	entries := []model.FinanceEntry{entry(1, "10.00"), entry(2, "0.01"), entry(3, "99.99")}
	balances := ComputeBalancesByMember(entries, []int64{1, 2, 3})
	if !balanceSum(balances).IsZero() {
		t.Errorf("sum = %s, want exactly 0", balanceSum(balances))
	}
}

func TestBalancesEmptyInputs(t *testing.T) {
	if got := ComputeBalancesByMember(nil, nil); got != nil {
		t.Errorf("no members: got %v, want nil", got)
	}
	balances := ComputeBalancesByMember(nil, []int64{1, 2})
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	for _, b := range balances {
		if !b.Balance.IsZero() {
			t.Errorf("member %d balance = %s, want 0", b.MemberID, b.Balance)
		}
	}
}

func TestBalancesForeignPayerSkipped(t *testing.T) {
	// Member 9 is no longer in the household; their entry cannot settle.
	entries := []model.FinanceEntry{entry(9, "50.00"), entry(1, "10.00")}
	balances := ComputeBalancesByMember(entries, []int64{1, 2})
	if got := findBalance(t, balances, 1); !got.Equal(decimal.RequireFromString("5")) {
		t.Errorf("member 1 balance = %s, want 5", got)
	}
	if !balanceSum(balances).IsZero() {
		t.Errorf("sum = %s, want 0", balanceSum(balances))
	}
}

func TestBalancesNegativeEntry(t *testing.T) {
	// Refunds flow back symmetrically.
	entries := []model.FinanceEntry{entry(1, "-20.00")}
	balances := ComputeBalancesByMember(entries, []int64{1, 2})
	if got := findBalance(t, balances, 1); !got.Equal(decimal.RequireFromString("-10")) {
		t.Errorf("payer balance = %s, want -10", got)
	}
	if !balanceSum(balances).IsZero() {
		t.Errorf("sum = %s, want 0", balanceSum(balances))
	}
}

func TestEntriesSinceLastAudit(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	before := model.FinanceEntry{ID: 1, CreatedAt: base}
	after := model.FinanceEntry{ID: 2, CreatedAt: base.Add(48 * time.Hour)}
	audits := []model.CashAuditRequest{
		{RequestedAt: base.Add(-time.Hour)},
		{RequestedAt: base.Add(24 * time.Hour)},
	}

	got := EntriesSinceLastAudit([]model.FinanceEntry{before, after}, audits)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("got %v, want only the post-audit entry", got)
	}
}

func TestEntriesSinceLastAuditNoAudits(t *testing.T) {
	entries := []model.FinanceEntry{{ID: 1}, {ID: 2}}
	got := EntriesSinceLastAudit(entries, nil)
	if len(got) != 2 {
		t.Errorf("got %d entries, want all", len(got))
	}
}
