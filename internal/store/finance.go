package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/model"
)

type FinanceStore struct {
	db *sql.DB
}

func NewFinanceStore(db *sql.DB) *FinanceStore {
	return &FinanceStore{db: db}
}

// Amounts are stored as decimal strings so SQLite never coerces them to
// floats.
func scanEntry(scanner interface{ Scan(...any) error }) (*model.FinanceEntry, error) {
	var e model.FinanceEntry
	var amount string
	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.Title, &e.Category, &amount,
		&e.PaidBy, &e.EntryDate, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return &e, nil
}

func scanAudit(scanner interface{ Scan(...any) error }) (*model.CashAuditRequest, error) {
	var a model.CashAuditRequest
	err := scanner.Scan(&a.ID, &a.HouseholdID, &a.RequestedBy, &a.RequestedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const entryCols = `id, household_id, title, category, amount, paid_by, entry_date, created_at`
const auditCols = `id, household_id, requested_by, requested_at`

func (s *FinanceStore) CreateEntry(householdID int64, title, category string, amount decimal.Decimal, paidBy int64, entryDate *time.Time) (*model.FinanceEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO finance_entries (household_id, title, category, amount, paid_by, entry_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, title, category, amount.String(), paidBy, entryDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert finance entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetEntry(id)
}

func (s *FinanceStore) GetEntry(id int64) (*model.FinanceEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryCols+` FROM finance_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get finance entry: %w", err)
	}
	return e, nil
}

func (s *FinanceStore) ListEntries(householdID int64) ([]model.FinanceEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryCols+` FROM finance_entries WHERE household_id = ? ORDER BY created_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list finance entries: %w", err)
	}
	defer rows.Close()

	var entries []model.FinanceEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan finance entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *FinanceStore) DeleteEntry(id int64) error {
	_, err := s.db.Exec(`DELETE FROM finance_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete finance entry: %w", err)
	}
	return nil
}

// RequestAudit records a cash-audit request, which resets the balance window
// for everything entered before it.
func (s *FinanceStore) RequestAudit(householdID, requestedBy int64) (*model.CashAuditRequest, error) {
	result, err := s.db.Exec(
		`INSERT INTO cash_audit_requests (household_id, requested_by) VALUES (?, ?)`,
		householdID, requestedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert audit request: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+auditCols+` FROM cash_audit_requests WHERE id = ?`, id)
	return scanAudit(row)
}

func (s *FinanceStore) ListAudits(householdID int64) ([]model.CashAuditRequest, error) {
	rows, err := s.db.Query(
		`SELECT `+auditCols+` FROM cash_audit_requests WHERE household_id = ? ORDER BY requested_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit requests: %w", err)
	}
	defer rows.Close()

	var audits []model.CashAuditRequest
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit request: %w", err)
		}
		audits = append(audits, *a)
	}
	return audits, rows.Err()
}
