package shopping

import "testing"

func TestCategorizeExact(t *testing.T) {
	cases := map[string]string{
		"milk":         "Dairy & Eggs",
		"Bananas":      "Produce",
		"  bread  ":    "Bread & Bakery",
		"toilet paper": "Household",
		"ice cream":    "Frozen",
	}
	for name, want := range cases {
		if got := Categorize(name); got != want {
			t.Errorf("Categorize(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCategorizeSubstring(t *testing.T) {
	cases := map[string]string{
		"cheddar cheese":      "Dairy & Eggs",
		"frozen dumplings":    "Frozen",
		"chicken thighs":      "Meat & Fish",
		"sourdough bread":     "Bread & Bakery",
		"all-purpose cleaner": "Household",
		"orange juice":        "Drinks",
	}
	for name, want := range cases {
		if got := Categorize(name); got != want {
			t.Errorf("Categorize(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCategorizeFallback(t *testing.T) {
	if got := Categorize("mystery item"); got != "Other" {
		t.Errorf("got %q, want Other", got)
	}
	if got := Categorize(""); got != "Other" {
		t.Errorf("empty name: got %q, want Other", got)
	}
}
