package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/database"
)

func setupFinanceTest(t *testing.T) (*FinanceStore, int64, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := NewUserStore(db)
	hs := NewHouseholdStore(db)
	u, err := us.Create("alice@example.com", "Alice", "x")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	h, err := hs.Create("Baker Street", u.ID)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	return NewFinanceStore(db), h.ID, u.ID
}

func TestFinanceEntryRoundTrip(t *testing.T) {
	fs, hid, uid := setupFinanceTest(t)

	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	created, err := fs.CreateEntry(hid, "Groceries", "Food", decimal.RequireFromString("42.37"), uid, &day)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if !created.Amount.Equal(decimal.RequireFromString("42.37")) {
		t.Errorf("amount = %s, want 42.37 (no float drift)", created.Amount)
	}
	if created.EntryDate == nil {
		t.Fatal("entry date lost")
	}

	entries, err := fs.ListEntries(hid)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Groceries" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestFinanceEntryNilDate(t *testing.T) {
	fs, hid, uid := setupFinanceTest(t)

	created, err := fs.CreateEntry(hid, "Bus fare", "", decimal.RequireFromString("3.00"), uid, nil)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if created.EntryDate != nil {
		t.Errorf("entry date = %v, want nil", created.EntryDate)
	}
	if created.EffectiveDate().IsZero() {
		t.Error("effective date should fall back to created_at")
	}
}

func TestCashAuditRequests(t *testing.T) {
	fs, hid, uid := setupFinanceTest(t)

	audits, err := fs.ListAudits(hid)
	if err != nil {
		t.Fatalf("list audits: %v", err)
	}
	if len(audits) != 0 {
		t.Errorf("got %d audits, want none", len(audits))
	}

	a, err := fs.RequestAudit(hid, uid)
	if err != nil {
		t.Fatalf("request audit: %v", err)
	}
	if a.RequestedBy != uid {
		t.Errorf("requested_by = %d, want %d", a.RequestedBy, uid)
	}

	audits, err = fs.ListAudits(hid)
	if err != nil {
		t.Fatalf("list audits: %v", err)
	}
	if len(audits) != 1 {
		t.Errorf("got %d audits, want 1", len(audits))
	}
}
