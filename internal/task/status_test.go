package task

import (
	"testing"
	"time"

	"github.com/rbeckett/hearth/internal/model"
)

func TestOneOffPending(t *testing.T) {
	tk := model.Task{ID: 1, Title: "Assemble shelf", Frequency: model.FrequencyOnce,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	status, due := ComputeStatus(tk, nil, today)
	if status != StatusPending {
		t.Errorf("status = %q, want %q", status, StatusPending)
	}
	if due != nil {
		t.Errorf("due = %v, want nil", due)
	}
}

func TestOneOffCompleted(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: model.FrequencyOnce,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	completed := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	status, _ := ComputeStatus(tk, &completed, today)
	if status != StatusCompleted {
		t.Errorf("status = %q, want %q", status, StatusCompleted)
	}
}

func TestDailyPending(t *testing.T) {
	tk := model.Task{ID: 1, Title: "Dishes", Frequency: model.FrequencyDaily, Interval: 1,
		CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	status, due := ComputeStatus(tk, nil, today)
	if status != StatusPending {
		t.Errorf("status = %q, want %q", status, StatusPending)
	}
	if due == nil {
		t.Fatal("due should not be nil")
	}
	want := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}
}

func TestDailyCompletedToday(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: model.FrequencyDaily, Interval: 1,
		CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
	completed := time.Date(2026, 2, 5, 8, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	status, _ := ComputeStatus(tk, &completed, today)
	if status != StatusCompleted {
		t.Errorf("status = %q, want %q", status, StatusCompleted)
	}
}

func TestWeeklyOverdue(t *testing.T) {
	// Weekly from Monday Jan 5; today is Tuesday Feb 3, never completed.
	tk := model.Task{ID: 2, Frequency: model.FrequencyWeekly, Interval: 1,
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	status, due := ComputeStatus(tk, nil, today)
	if status != StatusOverdue {
		t.Errorf("status = %q, want %q", status, StatusOverdue)
	}
	if due == nil {
		t.Fatal("due should not be nil")
	}
	want := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}
}

func TestBiweeklyInterval(t *testing.T) {
	// Every 2 weeks from Monday Jan 5: Jan 19, Feb 2. Today Jan 12 means
	// the Jan 5 occurrence is still the current one and is overdue.
	tk := model.Task{ID: 1, Frequency: model.FrequencyWeekly, Interval: 2,
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC)

	status, due := ComputeStatus(tk, nil, today)
	if status != StatusOverdue {
		t.Errorf("status = %q, want %q", status, StatusOverdue)
	}
	want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}
}

func TestMonthlyCompleted(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: model.FrequencyMonthly, Interval: 1,
		CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
	completed := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	status, _ := ComputeStatus(tk, &completed, today)
	if status != StatusCompleted {
		t.Errorf("status = %q, want %q", status, StatusCompleted)
	}
}

func TestNotDueBeforeCreation(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: model.FrequencyDaily, Interval: 1,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	status, due := ComputeStatus(tk, nil, today)
	if status != StatusNotDue {
		t.Errorf("status = %q, want %q", status, StatusNotDue)
	}
	if due != nil {
		t.Errorf("due = %v, want nil", due)
	}
}

func TestUnknownFrequencyFallsBackToOneOff(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: "fortnightly",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	today := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	status, _ := ComputeStatus(tk, nil, today)
	if status != StatusPending {
		t.Errorf("status = %q, want %q", status, StatusPending)
	}
}

func TestIsDueOnDate(t *testing.T) {
	tk := model.Task{ID: 1, Frequency: model.FrequencyWeekly, Interval: 1,
		CreatedAt: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)} // Monday

	if !IsDueOnDate(tk, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected weekly task due the following Monday")
	}
	if IsDueOnDate(tk, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected weekly task not due on Tuesday")
	}
	if IsDueOnDate(tk, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected task not due before creation")
	}

	oneOff := model.Task{ID: 2, Frequency: model.FrequencyOnce, CreatedAt: tk.CreatedAt}
	if !IsDueOnDate(oneOff, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("one-off tasks stay due until completed")
	}
}
