package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/rbeckett/hearth/internal/model"
)

// DefaultActivityLimit bounds the recent-activity feed.
const DefaultActivityLimit = 12

// ActivityItem is the uniform feed shape every household event maps onto.
type ActivityItem struct {
	ID   int64     `json:"id"`
	At   time.Time `json:"at"`
	Icon string    `json:"icon"`
	Text string    `json:"text"`
}

// BuildRecentActivity maps heterogeneous household events onto the uniform
// feed shape, newest first, truncated to limit (DefaultActivityLimit when
// non-positive). Unknown event types get a generic entry rather than being
// dropped, and missing payload fields fall back to placeholder text.
func BuildRecentActivity(events []model.HouseholdEvent, limit int) []ActivityItem {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	items := make([]ActivityItem, 0, len(events))
	for _, e := range events {
		icon, text := describeEvent(e)
		items = append(items, ActivityItem{ID: e.ID, At: e.CreatedAt, Icon: icon, Text: text})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func describeEvent(e model.HouseholdEvent) (icon, text string) {
	actor := payloadField(e.Payload, "actor", "Someone")
	switch e.EventType {
	case model.EventTaskCompleted:
		return "✅", fmt.Sprintf("%s completed %s", actor, payloadField(e.Payload, "title", "a task"))
	case model.EventTaskSkipped:
		return "⏭️", fmt.Sprintf("%s skipped %s", actor, payloadField(e.Payload, "title", "a task"))
	case model.EventShoppingCompleted:
		return "🛒", fmt.Sprintf("%s checked off %s", actor, payloadField(e.Payload, "title", "a shopping item"))
	case model.EventFinanceCreated:
		text := fmt.Sprintf("%s added %s", actor, payloadField(e.Payload, "title", "an expense"))
		if amount, ok := e.Payload["amount"]; ok && amount != "" {
			text += " (" + amount + ")"
		}
		return "💸", text
	case model.EventCashAuditRequested:
		return "🧾", fmt.Sprintf("%s requested a cash audit", actor)
	case model.EventRoleChanged:
		return "👑", fmt.Sprintf("%s is now %s %s",
			payloadField(e.Payload, "name", "a member"),
			article(payloadField(e.Payload, "role", "member")),
			payloadField(e.Payload, "role", "member"))
	default:
		return "📌", fmt.Sprintf("%s updated the household", actor)
	}
}

func payloadField(p map[string]string, key, fallback string) string {
	if p == nil {
		return fallback
	}
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return fallback
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
