// Package shopping groups shared shopping list items by store section.
package shopping

import "strings"

// Categorize returns the store section for an item name: exact match first,
// then substring match, falling back to "Other".
func Categorize(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "Other"
	}
	if section, ok := exactSections[name]; ok {
		return section
	}
	for _, m := range substringSections {
		if strings.Contains(name, m.keyword) {
			return m.section
		}
	}
	return "Other"
}

var exactSections = map[string]string{
	// Produce
	"apples":   "Produce",
	"bananas":  "Produce",
	"tomatoes": "Produce",
	"potatoes": "Produce",
	"onions":   "Produce",
	"garlic":   "Produce",
	"carrots":  "Produce",
	"lettuce":  "Produce",
	"spinach":  "Produce",
	"peppers":  "Produce",
	"lemons":   "Produce",
	"avocado":  "Produce",
	"cucumber": "Produce",
	"broccoli": "Produce",

	// Dairy & Eggs
	"milk":       "Dairy & Eggs",
	"eggs":       "Dairy & Eggs",
	"butter":     "Dairy & Eggs",
	"yogurt":     "Dairy & Eggs",
	"cheese":     "Dairy & Eggs",
	"sour cream": "Dairy & Eggs",
	"oat milk":   "Dairy & Eggs",

	// Meat & Fish
	"chicken": "Meat & Fish",
	"beef":    "Meat & Fish",
	"pork":    "Meat & Fish",
	"bacon":   "Meat & Fish",
	"salmon":  "Meat & Fish",
	"shrimp":  "Meat & Fish",
	"mince":   "Meat & Fish",

	// Bread & Bakery
	"bread":     "Bread & Bakery",
	"bagels":    "Bread & Bakery",
	"tortillas": "Bread & Bakery",
	"buns":      "Bread & Bakery",

	// Pantry
	"rice":      "Pantry",
	"pasta":     "Pantry",
	"flour":     "Pantry",
	"sugar":     "Pantry",
	"salt":      "Pantry",
	"olive oil": "Pantry",
	"cereal":    "Pantry",
	"oats":      "Pantry",
	"coffee":    "Pantry",
	"tea":       "Pantry",
	"beans":     "Pantry",
	"ketchup":   "Pantry",

	// Frozen
	"ice cream":    "Frozen",
	"frozen pizza": "Frozen",
	"frozen peas":  "Frozen",

	// Drinks
	"juice":          "Drinks",
	"soda":           "Drinks",
	"beer":           "Drinks",
	"wine":           "Drinks",
	"sparkling water": "Drinks",

	// Household
	"dish soap":     "Household",
	"paper towels":  "Household",
	"toilet paper":  "Household",
	"trash bags":    "Household",
	"laundry detergent": "Household",
	"sponges":       "Household",
	"light bulbs":   "Household",
}

// Ordered most-specific first so e.g. "frozen" wins before "pizza" would.
var substringSections = []struct {
	keyword string
	section string
}{
	{"frozen", "Frozen"},
	{"detergent", "Household"},
	{"cleaner", "Household"},
	{"soap", "Household"},
	{"shampoo", "Household"},
	{"cheese", "Dairy & Eggs"},
	{"yogurt", "Dairy & Eggs"},
	{"milk", "Dairy & Eggs"},
	{"chicken", "Meat & Fish"},
	{"beef", "Meat & Fish"},
	{"fish", "Meat & Fish"},
	{"sausage", "Meat & Fish"},
	{"bread", "Bread & Bakery"},
	{"juice", "Drinks"},
	{"water", "Drinks"},
	{"berries", "Produce"},
	{"salad", "Produce"},
	{"sauce", "Pantry"},
	{"canned", "Pantry"},
	{"spice", "Pantry"},
}
