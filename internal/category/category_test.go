package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLabelExact(t *testing.T) {
	for _, l := range Labels() {
		assert.Equal(t, l, MatchLabel(string(l)))
	}
	// Case-insensitive exact match.
	assert.Equal(t, Groceries, MatchLabel("🛒 GROCERIES"))
}

func TestMatchLabelKeywords(t *testing.T) {
	testCases := []struct {
		input string
		want  Label
	}{
		{"grocery store", Groceries},
		{"some supermarket", Groceries},
		{"fine dining", DiningOut},
		{"coffee shop", DiningOut},
		{"taxi ride", Transportation},
		{"gas station", Transportation},
		{"pharmacy", Healthcare},
		{"monthly rent", Housing},
		{"streaming subscription", Subscriptions},
		{"movie night", Entertainment},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchLabel(tc.input))
		})
	}
}

func TestMatchLabelFuzzy(t *testing.T) {
	// Emoji stripped and one character off: close enough to the label name
	// to recover via fuzzy matching.
	assert.Equal(t, Subscriptions, MatchLabel("🛒 Subscripcions"))
}

func TestMatchLabelFallsBackToOther(t *testing.T) {
	assert.Equal(t, Other, MatchLabel(""))
	assert.Equal(t, Other, MatchLabel("   "))
	assert.Equal(t, Other, MatchLabel("qqqqqqqqqqqqqqqq"))
}

// MatchLabel must be total: whatever the input, the result is a member of
// the closed enumeration.
func TestMatchLabelIsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "groceries", "GROCERY", "רמי לוי", "🤷", "Category: Dining Out",
		"transportation!!!", "subscr", "1234", "other", "misc stuff",
	}
	for _, input := range inputs {
		got := MatchLabel(input)
		assert.True(t, IsValid(got), "MatchLabel(%q) = %q is outside the enumeration", input, got)
	}
}

func TestQuickPickIsSubsetOfLabels(t *testing.T) {
	for _, l := range QuickPick() {
		assert.True(t, IsValid(l))
	}
	assert.Contains(t, QuickPick(), Other)
}
