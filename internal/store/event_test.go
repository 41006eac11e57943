package store

import (
	"testing"

	"github.com/rbeckett/hearth/internal/database"
	"github.com/rbeckett/hearth/internal/model"
)

func setupEventTest(t *testing.T) (*EventStore, int64, int64) {
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
	return NewEventStore(db), h.ID, u.ID
}

func TestEventRecordAndRecent(t *testing.T) {
	es, hid, uid := setupEventTest(t)

	e, err := es.Record(hid, model.EventTaskCompleted, &uid, map[string]string{"actor": "Alice", "title": "Dishes"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if e.Payload["title"] != "Dishes" {
		t.Errorf("payload = %v", e.Payload)
	}

	events, err := es.Recent(hid, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 1 || events[0].EventType != model.EventTaskCompleted {
		t.Errorf("events = %+v", events)
	}
}

func TestEventRecentLimit(t *testing.T) {
	es, hid, uid := setupEventTest(t)

	for i := 0; i < 5; i++ {
		if _, err := es.Record(hid, model.EventFinanceCreated, &uid, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	events, err := es.Recent(hid, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("got %d events, want 3", len(events))
	}
	// Newest first.
	if events[0].ID < events[1].ID {
		t.Error("events not newest-first")
	}
}

func TestEventNilPayload(t *testing.T) {
	es, hid, _ := setupEventTest(t)

	e, err := es.Record(hid, model.EventCashAuditRequested, nil, nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if e.ActorID != nil {
		t.Errorf("actor = %v, want nil", e.ActorID)
	}
}
