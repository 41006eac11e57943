package model

import "time"

const (
	EventTaskCompleted      = "task_completed"
	EventTaskSkipped        = "task_skipped"
	EventShoppingCompleted  = "shopping_completed"
	EventFinanceCreated     = "finance_created"
	EventCashAuditRequested = "cash_audit_requested"
	EventRoleChanged        = "role_changed"
)

// HouseholdEvent is an append-only audit record of something that happened in
// a household. Payload carries small display strings (titles, names, amounts)
// so the activity feed never needs to join back to the source tables.
type HouseholdEvent struct {
	ID          int64             `json:"id"`
	HouseholdID int64             `json:"household_id"`
	EventType   string            `json:"event_type"`
	ActorID     *int64            `json:"actor_id"`
	Payload     map[string]string `json:"payload"`
	CreatedAt   time.Time         `json:"created_at"`
}
