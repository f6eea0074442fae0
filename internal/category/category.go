// Package category defines the closed set of spending categories and the
// normalization of free-form text onto that set.
package category

import (
	"strings"

	"github.com/kidusabe1/Budgy-By-K/internal/fuzzy"
)

// Label is one value from the closed set of spending categories.
type Label string

// The full category enumeration. Order matters for presentation
// (menus, reports), not for matching.
const (
	Groceries      Label = "🛒 Groceries"
	DiningOut      Label = "🍽️ Dining Out"
	Transportation Label = "🚗 Transportation"
	Entertainment  Label = "🎬 Entertainment"
	PersonalCare   Label = "💅 Personal Care"
	Housing        Label = "🏠 Housing"
	Healthcare     Label = "💊 Healthcare"
	Education      Label = "📚 Education"
	Gifts          Label = "🎁 Gifts"
	Subscriptions  Label = "📱 Subscriptions"
	Other          Label = "🔧 Other"
)

var labels = []Label{
	Groceries,
	DiningOut,
	Transportation,
	Entertainment,
	PersonalCare,
	Housing,
	Healthcare,
	Education,
	Gifts,
	Subscriptions,
	Other,
}

// quickPick is the short menu offered when an unknown merchant needs a
// human decision. A subset of the full enumeration, kept small enough
// for a single-column keyboard.
var quickPick = []Label{
	Groceries,
	DiningOut,
	Transportation,
	Healthcare,
	Subscriptions,
	Housing,
	Entertainment,
	Other,
}

// Labels returns the full category enumeration in presentation order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// QuickPick returns the short list of categories offered in the
// unknown-merchant prompt.
func QuickPick() []Label {
	out := make([]Label, len(quickPick))
	copy(out, quickPick)
	return out
}

// IsValid reports whether l is a member of the category enumeration.
func IsValid(l Label) bool {
	for _, known := range labels {
		if known == l {
			return true
		}
	}
	return false
}

// aliasRule maps a generic lowercase keyword to a category. The table is
// scanned in order and the first matching keyword wins, so more specific
// keywords must precede more general ones.
type aliasRule struct {
	keyword string
	label   Label
}

var aliasTable = []aliasRule{
	{"grocery", Groceries},
	{"grocer", Groceries},
	{"market", Groceries},
	{"super", Groceries},
	{"food", Groceries},
	{"dining", DiningOut},
	{"restaurant", DiningOut},
	{"coffee", DiningOut},
	{"cafe", DiningOut},
	{"transport", Transportation},
	{"taxi", Transportation},
	{"bus", Transportation},
	{"train", Transportation},
	{"fuel", Transportation},
	{"gas", Transportation},
	{"health", Healthcare},
	{"pharm", Healthcare},
	{"med", Healthcare},
	{"doctor", Healthcare},
	{"rent", Housing},
	{"home", Housing},
	{"housing", Housing},
	{"subscription", Subscriptions},
	{"subs", Subscriptions},
	{"entertain", Entertainment},
	{"movie", Entertainment},
	{"beauty", PersonalCare},
	{"education", Education},
	{"course", Education},
	{"gift", Gifts},
}

// labelFuzzyCutoff is deliberately loose: we are recovering from minor
// text variation inside a small, known label space.
const labelFuzzyCutoff = 0.6

// MatchLabel maps arbitrary free text (user input, model output) onto the
// category enumeration. It is total: every input resolves to a valid
// Label, with Other as the catch-all. Resolution order is exact match,
// keyword aliases, then fuzzy match against the label names.
func MatchLabel(text string) Label {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return Other
	}

	for _, l := range labels {
		if lowered == strings.ToLower(string(l)) {
			return l
		}
	}

	for _, rule := range aliasTable {
		if strings.Contains(lowered, rule.keyword) {
			return rule.label
		}
	}

	lowerNames := make([]string, len(labels))
	for i, l := range labels {
		lowerNames[i] = strings.ToLower(string(l))
	}
	if match, ok := fuzzy.BestMatch(lowered, lowerNames, labelFuzzyCutoff); ok {
		for i, name := range lowerNames {
			if name == match {
				return labels[i]
			}
		}
	}

	return Other
}
