// Package dashboard assembles the landing page: it renders markdown segments
// to sanitized HTML and builds the data payload for each embedded widget.
package dashboard

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rbeckett/hearth/internal/analytics"
	"github.com/rbeckett/hearth/internal/landing"
	"github.com/rbeckett/hearth/internal/model"
	"github.com/rbeckett/hearth/internal/task"
)

// SourceData carries the household state widgets are computed from. Handlers
// load it once per page render; every widget reads from the same snapshot.
type SourceData struct {
	ViewerID        int64
	Members         []model.HouseholdMember
	MemberNames     map[int64]string
	Tasks           []model.Task
	Completions     []model.TaskCompletion
	LastCompletions map[int64]*time.Time
	Entries         []model.FinanceEntry
	Audits          []model.CashAuditRequest
	Events          []model.HouseholdEvent
}

// Options controls presentation-level concerns.
type Options struct {
	Currency string
	Locale   string
	Now      time.Time // zero means time.Now()
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Widget is one rendered widget: a stable key, a display title, and a
// key-specific data payload serialized as-is to the client.
type Widget struct {
	Key   landing.WidgetKey `json:"key"`
	Title string            `json:"title"`
	Data  any               `json:"data"`
}

// TaskOverview summarizes task state across the household.
type TaskOverview struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// TaskItem is one task row in the tasks-for-you widget.
type TaskItem struct {
	ID      int64      `json:"id"`
	Title   string     `json:"title"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// BalanceLine is one member's formatted settlement position.
type BalanceLine struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Owed     bool   `json:"owed"` // true when the household owes this member
}

// FairnessLine pairs a fairness row with the member's display name.
type FairnessLine struct {
	MemberID    int64  `json:"member_id"`
	Name        string `json:"name"`
	Completions int    `json:"completions"`
	Score       int    `json:"score"`
}

// ActivityLine is one feed row with a humanized relative timestamp.
type ActivityLine struct {
	ID   int64  `json:"id"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	When string `json:"when"`
}

// MonthLine is one month in the expenses-by-month widget.
type MonthLine struct {
	Month      string         `json:"month"`
	Total      string         `json:"total"`
	Categories []CategoryLine `json:"categories"`
}

// CategoryLine is one category's formatted spend within a month.
type CategoryLine struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// BuildWidget computes the payload for one widget key against the given
// snapshot. Unknown keys return an error; the page renderer leaves their
// tokens as literal text, so this only fires on direct API requests.
func BuildWidget(key landing.WidgetKey, src SourceData, opts Options) (Widget, error) {
	switch key {
	case landing.WidgetTasksOverview:
		return Widget{Key: key, Title: "Tasks", Data: buildTaskOverview(src, opts)}, nil
	case landing.WidgetTasksForYou:
		return Widget{Key: key, Title: "Your tasks", Data: buildTasksForYou(src, opts)}, nil
	case landing.WidgetYourBalance:
		return Widget{Key: key, Title: "Your balance", Data: buildYourBalance(src, opts)}, nil
	case landing.WidgetHouseholdBalance:
		return Widget{Key: key, Title: "Who owes whom", Data: buildHouseholdBalance(src, opts)}, nil
	case landing.WidgetRecentActivity:
		return Widget{Key: key, Title: "Recent activity", Data: buildActivity(src, opts)}, nil
	case landing.WidgetFairnessScore:
		return Widget{Key: key, Title: "Fairness", Data: buildFairnessScore(src)}, nil
	case landing.WidgetFairnessByMember:
		return Widget{Key: key, Title: "Fairness by member", Data: buildFairnessByMember(src)}, nil
	case landing.WidgetExpensesByMonth:
		return Widget{Key: key, Title: "Expenses", Data: buildExpensesByMonth(src, opts)}, nil
	default:
		return Widget{}, fmt.Errorf("unknown widget key %q", key)
	}
}

// BuildAll renders every widget referenced by the given markdown.
func BuildAll(markdown string, src SourceData, opts Options) []Widget {
	keys := landing.ExtractKeys(markdown)
	widgets := make([]Widget, 0, len(keys))
	for _, key := range keys {
		w, err := BuildWidget(key, src, opts)
		if err != nil {
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets
}

func buildTaskOverview(src SourceData, opts Options) TaskOverview {
	var ov TaskOverview
	today := opts.now()
	for _, t := range src.Tasks {
		ov.Total++
		status, _ := task.ComputeStatus(t, src.LastCompletions[t.ID], today)
		switch status {
		case task.StatusPending:
			ov.Pending++
		case task.StatusOverdue:
			ov.Overdue++
		case task.StatusCompleted:
			ov.Completed++
		}
	}
	return ov
}

func buildTasksForYou(src SourceData, opts Options) []TaskItem {
	today := opts.now()
	items := []TaskItem{}
	for _, t := range src.Tasks {
		if t.AssignedTo == nil || *t.AssignedTo != src.ViewerID {
			continue
		}
		status, due := task.ComputeStatus(t, src.LastCompletions[t.ID], today)
		if status != task.StatusPending && status != task.StatusOverdue {
			continue
		}
		items = append(items, TaskItem{ID: t.ID, Title: t.Title, Status: string(status), DueDate: due})
	}
	return items
}

func buildYourBalance(src SourceData, opts Options) BalanceLine {
	lines := buildHouseholdBalance(src, opts)
	for _, l := range lines {
		if l.MemberID == src.ViewerID {
			return l
		}
	}
	return BalanceLine{
		MemberID: src.ViewerID,
		Name:     memberName(src, src.ViewerID),
		Amount:   FormatMoney(decimalZero, opts.Currency),
		Owed:     false,
	}
}

func buildHouseholdBalance(src SourceData, opts Options) []BalanceLine {
	window := analytics.EntriesSinceLastAudit(src.Entries, src.Audits)
	balances := analytics.ComputeBalancesByMember(window, memberIDs(src))

	lines := make([]BalanceLine, 0, len(balances))
	for _, b := range balances {
		lines = append(lines, BalanceLine{
			MemberID: b.MemberID,
			Name:     memberName(src, b.MemberID),
			Amount:   FormatMoney(b.Balance.Abs(), opts.Currency),
			Owed:     b.Balance.Sign() > 0,
		})
	}
	return lines
}

func buildActivity(src SourceData, opts Options) []ActivityLine {
	items := analytics.BuildRecentActivity(src.Events, analytics.DefaultActivityLimit)
	now := opts.now()

	lines := make([]ActivityLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, ActivityLine{
			ID:   it.ID,
			Icon: it.Icon,
			Text: it.Text,
			When: humanize.RelTime(it.At, now, "ago", "from now"),
		})
	}
	return lines
}

func buildFairnessScore(src SourceData) analytics.FairnessReport {
	return analytics.ComputeTaskFairness(memberIDs(src), src.Completions)
}

func buildFairnessByMember(src SourceData) []FairnessLine {
	report := analytics.ComputeTaskFairness(memberIDs(src), src.Completions)
	lines := make([]FairnessLine, 0, len(report.Rows))
	for _, row := range report.Rows {
		lines = append(lines, FairnessLine{
			MemberID:    row.MemberID,
			Name:        memberName(src, row.MemberID),
			Completions: row.Completions,
			Score:       row.Score,
		})
	}
	return lines
}

func buildExpensesByMonth(src SourceData, opts Options) []MonthLine {
	months := analytics.AggregateMonthlyExpenses(src.Entries, analytics.DefaultMonthLimit, analytics.DefaultTopCategories)
	lines := make([]MonthLine, 0, len(months))
	for _, m := range months {
		cats := make([]CategoryLine, 0, len(m.Categories))
		for _, c := range m.Categories {
			cats = append(cats, CategoryLine{Category: c.Category, Total: FormatMoney(c.Total, opts.Currency)})
		}
		lines = append(lines, MonthLine{Month: m.Month, Total: FormatMoney(m.Total, opts.Currency), Categories: cats})
	}
	return lines
}

func memberIDs(src SourceData) []int64 {
	ids := make([]int64, 0, len(src.Members))
	for _, m := range src.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func memberName(src SourceData, id int64) string {
	if name, ok := src.MemberNames[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Member %d", id)
}
