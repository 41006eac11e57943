// Package task computes due status for one-off and recurring household
// tasks from their frequency model and completion history.
package task

import (
	"time"

	"github.com/rbeckett/hearth/internal/model"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusNotDue    Status = "not_due"
)

// ComputeStatus determines the status and current due date for a task given
// its most recent non-skipped completion. An unrecognized frequency falls
// back to one-off semantics.
func ComputeStatus(t model.Task, lastCompletion *time.Time, today time.Time) (Status, *time.Time) {
	today = startOfDay(today)

	if !recurring(t.Frequency) {
		if lastCompletion != nil {
			return StatusCompleted, nil
		}
		return StatusPending, nil
	}

	// Walk occurrences forward from creation to find the most recent due
	// date on or before today.
	first := startOfDay(t.CreatedAt)
	if first.After(today) {
		return StatusNotDue, nil
	}
	due := first
	for {
		next := NextDue(t, due)
		if next.After(today) {
			break
		}
		due = next
	}

	if lastCompletion != nil && !startOfDay(*lastCompletion).Before(due) {
		return StatusCompleted, &due
	}
	if due.Before(today) {
		return StatusOverdue, &due
	}
	return StatusPending, &due
}

// NextDue returns the occurrence after the given one, honoring the task's
// interval (minimum 1).
func NextDue(t model.Task, after time.Time) time.Time {
	interval := t.Interval
	if interval < 1 {
		interval = 1
	}
	switch t.Frequency {
	case model.FrequencyWeekly:
		return after.AddDate(0, 0, 7*interval)
	case model.FrequencyMonthly:
		return after.AddDate(0, interval, 0)
	default:
		return after.AddDate(0, 0, interval)
	}
}

// IsDueOnDate reports whether a task has an occurrence on the given date.
// One-off tasks are due until completed.
func IsDueOnDate(t model.Task, date time.Time) bool {
	if !recurring(t.Frequency) {
		return true
	}
	date = startOfDay(date)
	occ := startOfDay(t.CreatedAt)
	for !occ.After(date) {
		if occ.Equal(date) {
			return true
		}
		occ = NextDue(t, occ)
	}
	return false
}

func recurring(frequency string) bool {
	switch frequency {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
		return true
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
