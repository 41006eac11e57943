// Package analytics computes the derived values the landing page widgets
// display: task fairness scores, finance balances, monthly expense
// aggregation, and the recent-activity feed. Every function is pure over its
// input collections; callers recompute per render or memoize as they like.
package analytics

import (
	"math"
	"sort"

	"github.com/rbeckett/hearth/internal/model"
)

// FairnessRow is one member's share of the household's task work.
type FairnessRow struct {
	MemberID    int64 `json:"member_id"`
	Completions int   `json:"completions"`
	Score       int   `json:"score"`
}

// FairnessReport scores how evenly task completions are spread across the
// household. Scores use a proportional-deviation heuristic: a member's score
// falls linearly with how far their completion count sits from the equal
// share, floored at zero. This is deliberately not a formal fairness index
// (Gini or similar); the simple heuristic matches what the widget shows.
type FairnessReport struct {
	Overall int           `json:"overall"`
	Rows    []FairnessRow `json:"rows"`
}

// ComputeTaskFairness scores each member of the given universe. Skipped
// completions do not count as work done. With no members the report is
// {100, nil}; with members but no completions everyone scores 100 (perfectly
// fair when nobody has done anything).
func ComputeTaskFairness(memberIDs []int64, completions []model.TaskCompletion) FairnessReport {
	ids := dedupe(memberIDs)
	if len(ids) == 0 {
		return FairnessReport{Overall: 100}
	}

	counts := make(map[int64]int)
	total := 0
	for _, c := range completions {
		if c.CompletedBy == nil || c.Skipped {
			continue
		}
		counts[*c.CompletedBy]++
		total++
	}

	expected := float64(total) / float64(len(ids))
	rows := make([]FairnessRow, 0, len(ids))
	sum := 0
	for _, id := range ids {
		score := 100
		if expected > 0 {
			deviation := math.Abs(float64(counts[id])-expected) / expected
			score = int(math.Round((1 - math.Min(1, deviation)) * 100))
			if score < 0 {
				score = 0
			}
		}
		sum += score
		rows = append(rows, FairnessRow{MemberID: id, Completions: counts[id], Score: score})
	}

	// Descending by score, ties keep member order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })

	overall := int(math.Round(float64(sum) / float64(len(ids))))
	return FairnessReport{Overall: overall, Rows: rows}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
