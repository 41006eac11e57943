package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceEntry struct {
	ID          int64           `json:"id"`
	HouseholdID int64           `json:"household_id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      int64           `json:"paid_by"`
	EntryDate   *time.Time      `json:"entry_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EffectiveDate is the date an entry counts against for monthly grouping:
// the explicit entry date when set, otherwise the creation time.
func (e FinanceEntry) EffectiveDate() time.Time {
	if e.EntryDate != nil {
		return *e.EntryDate
	}
	return e.CreatedAt
}

type CashAuditRequest struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	RequestedBy int64     `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}
