package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rbeckett/hearth/internal/model"
)

// ErrNotOwner is returned by owner-gated writes when the acting user does
// not hold the owner role in the household.
var ErrNotOwner = errors.New("requires owner role")

type HouseholdStore struct {
	db *sql.DB
}

func NewHouseholdStore(db *sql.DB) *HouseholdStore {
	return &HouseholdStore{db: db}
}

func scanHousehold(scanner interface{ Scan(...any) error }) (*model.Household, error) {
	var h model.Household
	err := scanner.Scan(&h.ID, &h.Name, &h.InviteCode, &h.LandingPageMarkdown, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.HouseholdMember, error) {
	var m model.HouseholdMember
	err := scanner.Scan(&m.ID, &m.HouseholdID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const householdCols = `id, name, invite_code, landing_page_markdown, created_at, updated_at`
const memberCols = `id, household_id, user_id, role, created_at, updated_at`

// Create creates a household with a fresh invite code and makes ownerID its
// owner.
func (s *HouseholdStore) Create(name string, ownerID int64) (*model.Household, error) {
	result, err := s.db.Exec(
		`INSERT INTO households (name, invite_code) VALUES (?, ?)`,
		name, uuid.NewString(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert household: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	if _, err := s.AddMember(id, ownerID, model.RoleOwner); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *HouseholdStore) GetByID(id int64) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) GetByInviteCode(code string) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE invite_code = ?`, code)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household by invite code: %w", err)
	}
	return h, nil
}

// RegenerateInviteCode invalidates the current invite code. Owner-gated.
func (s *HouseholdStore) RegenerateInviteCode(householdID, actorID int64) (string, error) {
	if err := s.requireOwner(householdID, actorID); err != nil {
		return "", err
	}
	code := uuid.NewString()
	_, err := s.db.Exec(
		`UPDATE households SET invite_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		code, householdID,
	)
	if err != nil {
		return "", fmt.Errorf("regenerate invite code: %w", err)
	}
	return code, nil
}

// UpdateLandingMarkdown persists the landing page markdown. Owner-gated:
// the UI hides the edit affordance from members, and this re-check keeps a
// bypassed client from writing anyway. Writes are last-write-wins.
func (s *HouseholdStore) UpdateLandingMarkdown(householdID, actorID int64, markdown string) error {
	if err := s.requireOwner(householdID, actorID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`UPDATE households SET landing_page_markdown = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		markdown, householdID,
	)
	if err != nil {
		return fmt.Errorf("update landing markdown: %w", err)
	}
	return nil
}

func (s *HouseholdStore) requireOwner(householdID, actorID int64) error {
	m, err := s.GetMember(householdID, actorID)
	if err != nil {
		return err
	}
	if m == nil || m.Role != model.RoleOwner {
		return ErrNotOwner
	}
	return nil
}

func (s *HouseholdStore) AddMember(householdID, userID int64, role string) (*model.HouseholdMember, error) {
	result, err := s.db.Exec(
		`INSERT INTO household_members (household_id, user_id, role) VALUES (?, ?, ?)`,
		householdID, userID, role,
	)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM household_members WHERE id = ?`, id)
	return scanMember(row)
}

func (s *HouseholdStore) GetMember(householdID, userID int64) (*model.HouseholdMember, error) {
	row := s.db.QueryRow(
		`SELECT `+memberCols+` FROM household_members WHERE household_id = ? AND user_id = ?`,
		householdID, userID,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *HouseholdStore) ListMembers(householdID int64) ([]model.HouseholdMember, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM household_members WHERE household_id = ? ORDER BY created_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.HouseholdMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// UpdateMemberRole changes a member's role. Owner-gated.
func (s *HouseholdStore) UpdateMemberRole(householdID, actorID, userID int64, role string) error {
	if err := s.requireOwner(householdID, actorID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`UPDATE household_members SET role = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE household_id = ? AND user_id = ?`,
		role, householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	return nil
}

func (s *HouseholdStore) RemoveMember(householdID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM household_members WHERE household_id = ? AND user_id = ?`,
		householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (s *HouseholdStore) ListHouseholdsForUser(userID int64) ([]model.Household, error) {
	rows, err := s.db.Query(
		`SELECT h.id, h.name, h.invite_code, h.landing_page_markdown, h.created_at, h.updated_at
		 FROM households h
		 JOIN household_members hm ON h.id = hm.household_id
		 WHERE hm.user_id = ?
		 ORDER BY h.name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list households for user: %w", err)
	}
	defer rows.Close()

	var households []model.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan household: %w", err)
		}
		households = append(households, *h)
	}
	return households, rows.Err()
}
