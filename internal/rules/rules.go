// Package rules ships the static categorization tables: an authoritative
// brand table for well-known merchants and a lower-confidence keyword
// table of generic terms spanning English and Hebrew. Both are read-only
// at runtime; an optional YAML file can replace the built-ins at startup.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
)

// Rule maps a substring to a category. Matching is containment against the
// normalized merchant key, not equality. Tables are scanned in order and
// the first matching rule wins.
type Rule struct {
	Key   string
	Label category.Label
}

// defaultBrands maps known brand substrings to categories.
var defaultBrands = []Rule{
	{"uber", category.Transportation},
	{"lyft", category.Transportation},
	{"mta", category.Transportation},
	{"whole foods", category.Groceries},
	{"trader joe", category.Groceries},
	{"target", category.Housing},
	{"netflix", category.Subscriptions},
	{"spotify", category.Subscriptions},
	{"starbucks", category.DiningOut},
	{"dunkin", category.DiningOut},
}

// defaultKeywords maps generic terms to categories. The table mixes
// scripts on purpose: point-of-sale merchant strings arrive in whatever
// language the terminal was registered in.
var defaultKeywords = []Rule{
	{"coffee", category.DiningOut},
	{"cafe", category.DiningOut},
	{"קפה", category.DiningOut},
	{"market", category.Groceries},
	{"grocery", category.Groceries},
	{"סופר", category.Groceries},
	{"taxi", category.Transportation},
	{"bus", category.Transportation},
	{"train", category.Transportation},
	{"דלק", category.Transportation},
	{"מונית", category.Transportation},
	{"רכבת", category.Transportation},
	{"pharm", category.Healthcare},
	{"drug", category.Healthcare},
	{"קופה", category.Healthcare},
	{"rent", category.Housing},
	{"apt", category.Housing},
	{"שכירות", category.Housing},
}

// Tables holds the two static rule tables.
type Tables struct {
	Brands   []Rule
	Keywords []Rule
}

// Defaults returns the built-in tables.
func Defaults() Tables {
	return Tables{
		Brands:   append([]Rule(nil), defaultBrands...),
		Keywords: append([]Rule(nil), defaultKeywords...),
	}
}

// yamlRule is one entry in the override file. Order in the file is
// preserved, since first-match-wins semantics depend on it.
type yamlRule struct {
	Key      string `yaml:"key"`
	Category string `yaml:"category"`
}

type yamlTables struct {
	Brands   []yamlRule `yaml:"brands"`
	Keywords []yamlRule `yaml:"keywords"`
}

// Load returns the rule tables, replacing the built-ins with the YAML
// file at path when it exists. Entries naming a category outside the
// enumeration are skipped with a warning; a missing file is not an error.
func Load(path string, logger logging.Logger) (Tables, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("path", path).Debug("Rules file not found, using built-in tables")
			return Defaults(), nil
		}
		return Tables{}, fmt.Errorf("reading rules file: %w", err)
	}

	var parsed yamlTables
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Tables{}, fmt.Errorf("parsing rules file: %w", err)
	}

	tables := Tables{
		Brands:   convertRules(parsed.Brands, logger),
		Keywords: convertRules(parsed.Keywords, logger),
	}
	if len(tables.Brands) == 0 {
		tables.Brands = append([]Rule(nil), defaultBrands...)
	}
	if len(tables.Keywords) == 0 {
		tables.Keywords = append([]Rule(nil), defaultKeywords...)
	}

	logger.WithFields(
		logging.Field{Key: "brands", Value: len(tables.Brands)},
		logging.Field{Key: "keywords", Value: len(tables.Keywords)},
	).Debug("Loaded categorization rule tables")

	return tables, nil
}

func convertRules(in []yamlRule, logger logging.Logger) []Rule {
	var out []Rule
	for _, r := range in {
		label := category.Label(r.Category)
		if r.Key == "" || !category.IsValid(label) {
			logger.WithFields(
				logging.Field{Key: "key", Value: r.Key},
				logging.Field{Key: "category", Value: r.Category},
			).Warn("Skipping invalid rule entry")
			continue
		}
		out = append(out, Rule{Key: r.Key, Label: label})
	}
	return out
}
