package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/model"
)

const (
	// DefaultMonthLimit is how many recent months the expenses widget shows.
	DefaultMonthLimit = 4
	// DefaultTopCategories is how many categories are listed per month.
	DefaultTopCategories = 3

	uncategorized = "Uncategorized"
)

// CategoryTotal is one category's spend within a month.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyExpenses is the aggregate spend for one calendar month.
type MonthlyExpenses struct {
	Month      string          `json:"month"` // YYYY-MM
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}

// AggregateMonthlyExpenses groups entries by their effective date truncated
// to year-month, newest month first, keeping the top categories by summed
// amount within each month. Non-positive limits fall back to the defaults.
func AggregateMonthlyExpenses(entries []model.FinanceEntry, limit, topCategories int) []MonthlyExpenses {
	if limit <= 0 {
		limit = DefaultMonthLimit
	}
	if topCategories <= 0 {
		topCategories = DefaultTopCategories
	}

	type bucket struct {
		total      decimal.Decimal
		byCategory map[string]decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		month := e.EffectiveDate().Format("2006-01")
		b := buckets[month]
		if b == nil {
			b = &bucket{byCategory: make(map[string]decimal.Decimal)}
			buckets[month] = b
		}
		cat := e.Category
		if cat == "" {
			cat = uncategorized
		}
		b.total = b.total.Add(e.Amount)
		b.byCategory[cat] = b.byCategory[cat].Add(e.Amount)
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	// YYYY-MM sorts correctly as a string.
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	if len(months) > limit {
		months = months[:limit]
	}

	out := make([]MonthlyExpenses, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		cats := make([]CategoryTotal, 0, len(b.byCategory))
		for name, total := range b.byCategory {
			cats = append(cats, CategoryTotal{Category: name, Total: total})
		}
		sort.Slice(cats, func(i, j int) bool {
			if !cats[i].Total.Equal(cats[j].Total) {
				return cats[i].Total.GreaterThan(cats[j].Total)
			}
			return cats[i].Category < cats[j].Category
		})
		if len(cats) > topCategories {
			cats = cats[:topCategories]
		}
		out = append(out, MonthlyExpenses{Month: m, Total: b.total, Categories: cats})
	}
	return out
}
