package analytics

import (
	"testing"
	"time"

	"github.com/rbeckett/hearth/internal/model"
)

func completionsFor(userID int64, n int) []model.TaskCompletion {
	out := make([]model.TaskCompletion, n)
	for i := range out {
		id := userID
		out[i] = model.TaskCompletion{TaskID: 1, CompletedBy: &id, CompletedAt: time.Now()}
	}
	return out
}

func TestFairnessNoMembers(t *testing.T) {
	r := ComputeTaskFairness(nil, nil)
	if r.Overall != 100 {
		t.Errorf("overall = %d, want 100", r.Overall)
	}
	if len(r.Rows) != 0 {
		t.Errorf("rows = %v, want none", r.Rows)
	}
}

func TestFairnessNoCompletions(t *testing.T) {
	r := ComputeTaskFairness([]int64{1, 2}, nil)
	if r.Overall != 100 {
		t.Errorf("overall = %d, want 100", r.Overall)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(r.Rows))
	}
	for _, row := range r.Rows {
		if row.Score != 100 {
			t.Errorf("member %d score = %d, want 100", row.MemberID, row.Score)
		}
	}
}

func TestFairnessFullyLopsided(t *testing.T) {
	// 10 vs 0 completions: expected share is 5, both deviate by 100%.
	completions := completionsFor(1, 10)
	r := ComputeTaskFairness([]int64{1, 2}, completions)
	if r.Overall != 0 {
		t.Errorf("overall = %d, want 0", r.Overall)
	}
	for _, row := range r.Rows {
		if row.Score != 0 {
			t.Errorf("member %d score = %d, want 0", row.MemberID, row.Score)
		}
	}
}

func TestFairnessEvenSplit(t *testing.T) {
	completions := append(completionsFor(1, 5), completionsFor(2, 5)...)
	r := ComputeTaskFairness([]int64{1, 2}, completions)
	if r.Overall != 100 {
		t.Errorf("overall = %d, want 100", r.Overall)
	}
}

func TestFairnessPartialDeviation(t *testing.T) {
	// 6 vs 2: expected 4, deviations 0.5 each, scores 50 each.
	completions := append(completionsFor(1, 6), completionsFor(2, 2)...)
	r := ComputeTaskFairness([]int64{1, 2}, completions)
	if r.Overall != 50 {
		t.Errorf("overall = %d, want 50", r.Overall)
	}
	for _, row := range r.Rows {
		if row.Score != 50 {
			t.Errorf("member %d score = %d, want 50", row.MemberID, row.Score)
		}
	}
}

func TestFairnessRowsSortedDescending(t *testing.T) {
	// Counts 1/2/0 with expected share 1: member 1 scores 100, members 2
	// and 3 both land on 0 and must keep their input order.
	completions := append(completionsFor(1, 1), completionsFor(2, 2)...)
	r := ComputeTaskFairness([]int64{1, 2, 3}, completions)
	if len(r.Rows) != 3 {
		t.Fatalf("got %d rows", len(r.Rows))
	}
	for i := 1; i < len(r.Rows); i++ {
		if r.Rows[i].Score > r.Rows[i-1].Score {
			t.Errorf("rows not sorted descending: %v", r.Rows)
		}
	}
	if r.Rows[0].MemberID != 1 || r.Rows[1].MemberID != 2 || r.Rows[2].MemberID != 3 {
		t.Errorf("row order = %v, want [1 2 3]", r.Rows)
	}
}

func TestFairnessSkippedCompletionsIgnored(t *testing.T) {
	id := int64(1)
	completions := []model.TaskCompletion{
		{TaskID: 1, CompletedBy: &id, Skipped: true, CompletedAt: time.Now()},
	}
	r := ComputeTaskFairness([]int64{1, 2}, completions)
	if r.Overall != 100 {
		t.Errorf("overall = %d, want 100 (skips are not work)", r.Overall)
	}
}

func TestFairnessDuplicateMemberIDs(t *testing.T) {
	r := ComputeTaskFairness([]int64{1, 1, 2}, completionsFor(1, 2))
	if len(r.Rows) != 2 {
		t.Errorf("got %d rows, want 2 after dedupe", len(r.Rows))
	}
}
