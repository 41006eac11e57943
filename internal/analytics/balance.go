package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/model"
)

// MemberBalance is one member's signed settlement position. Positive means
// the household owes them, negative means they owe the household.
type MemberBalance struct {
	MemberID int64           `json:"member_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// ComputeBalancesByMember settles the given entries across the member
// universe. Each entry is split equally: the payer is credited the full
// amount and every member, payer included, is debited one share. The
// rounding remainder of the split folds into the payer's share, so each
// entry allocates exactly its amount and the returned balances always sum
// to exactly zero.
//
// Entries paid by someone outside the member universe are skipped; they
// cannot settle to zero within it. Callers restrict entries to the relevant
// window (see EntriesSinceLastAudit) before calling.
func ComputeBalancesByMember(entries []model.FinanceEntry, memberIDs []int64) []MemberBalance {
	ids := dedupe(memberIDs)
	if len(ids) == 0 {
		return nil
	}

	inUniverse := make(map[int64]bool, len(ids))
	for _, id := range ids {
		inUniverse[id] = true
	}

	n := decimal.NewFromInt(int64(len(ids)))
	balances := make(map[int64]decimal.Decimal, len(ids))

	for _, e := range entries {
		if !inUniverse[e.PaidBy] {
			continue
		}
		share := e.Amount.DivRound(n, 2)
		payerShare := e.Amount.Sub(share.Mul(decimal.NewFromInt(int64(len(ids) - 1))))
		for _, id := range ids {
			if id == e.PaidBy {
				// credited the amount, owes their own (remainder-bearing) share
				balances[id] = balances[id].Add(e.Amount).Sub(payerShare)
			} else {
				balances[id] = balances[id].Sub(share)
			}
		}
	}

	out := make([]MemberBalance, 0, len(ids))
	for _, id := range ids {
		out = append(out, MemberBalance{MemberID: id, Balance: balances[id]})
	}
	return out
}

// EntriesSinceLastAudit narrows entries to those created strictly after the
// most recent cash-audit request. With no audit on record all entries are in
// scope.
func EntriesSinceLastAudit(entries []model.FinanceEntry, audits []model.CashAuditRequest) []model.FinanceEntry {
	var latest time.Time
	for _, a := range audits {
		if a.RequestedAt.After(latest) {
			latest = a.RequestedAt
		}
	}
	if latest.IsZero() {
		return entries
	}
	var out []model.FinanceEntry
	for _, e := range entries {
		if e.CreatedAt.After(latest) {
			out = append(out, e)
		}
	}
	return out
}
