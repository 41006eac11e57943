package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rbeckett/hearth/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(scanner interface{ Scan(...any) error }) (*model.HouseholdEvent, error) {
	var e model.HouseholdEvent
	var payload string
	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.EventType, &e.ActorID, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			// A mangled payload should not take the feed down; the
			// activity mapping falls back to placeholders.
			e.Payload = nil
		}
	}
	return &e, nil
}

const eventCols = `id, household_id, event_type, actor_id, payload, created_at`

// Record appends an event to the household's activity log.
func (s *EventStore) Record(householdID int64, eventType string, actorID *int64, payload map[string]string) (*model.HouseholdEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	result, err := s.db.Exec(
		`INSERT INTO household_events (household_id, event_type, actor_id, payload) VALUES (?, ?, ?, ?)`,
		householdID, eventType, actorID, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM household_events WHERE id = ?`, id)
	return scanEvent(row)
}

// Recent returns the newest events first, up to limit.
func (s *EventStore) Recent(householdID int64, limit int) ([]model.HouseholdEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM household_events WHERE household_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.HouseholdEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
