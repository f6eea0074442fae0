// Package categorizer implements the merchant categorization pipeline:
// 1. Learned merchant map lookup (fast path, with stale-entry eviction)
// 2. Brand-table substring matching
// 3. Fuzzy identity matching against known merchant keys
// 4. Generic keyword heuristics across languages
// 5. LLM classification as an optional last resort
// Unresolved merchants fall through to the catch-all category and trigger
// a side-channel notification so a human can map them later.
package categorizer

import (
	"context"
	"sort"
	"strings"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/classifier"
	"github.com/kidusabe1/Budgy-By-K/internal/fuzzy"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
	"github.com/kidusabe1/Budgy-By-K/internal/merchant"
	"github.com/kidusabe1/Budgy-By-K/internal/notifier"
	"github.com/kidusabe1/Budgy-By-K/internal/rules"
)

// identityFuzzyCutoff is deliberately conservative: a wrong merchant
// analogy silently mis-categorizes every future transaction of that
// merchant, so only near-identical keys may match.
const identityFuzzyCutoff = 0.8

// Categorizer sequences the categorization stages and applies the
// cache-write policy. All dependencies are injected; the classifier and
// notifier may be nil, which disables their stages.
type Categorizer struct {
	store      merchant.Store
	tables     rules.Tables
	classifier classifier.Classifier
	notifier   notifier.Notifier
	logger     logging.Logger
}

// New creates a Categorizer with the given dependencies.
func New(store merchant.Store, tables rules.Tables, cls classifier.Classifier, ntf notifier.Notifier, logger logging.Logger) *Categorizer {
	return &Categorizer{
		store:      store,
		tables:     tables,
		classifier: cls,
		notifier:   ntf,
		logger:     logger,
	}
}

// PredictCategory maps a raw merchant string to a category. It always
// returns a member of the category enumeration and never returns an
// error: storage, classifier, and notifier failures degrade individual
// stages, they do not fail the prediction.
func (c *Categorizer) PredictCategory(ctx context.Context, rawMerchant string) category.Label {
	key := merchant.Normalize(rawMerchant)
	if key == "" {
		return category.Other
	}

	cached := c.loadMap(ctx)

	// Learned map fast path. A cached catch-all is stale by definition:
	// evict it and re-run the pipeline so the merchant gets a fresh chance
	// at a real category.
	if label, ok := cached[key]; ok {
		if label != category.Other {
			c.logger.WithFields(
				logging.Field{Key: "merchant", Value: key},
				logging.Field{Key: "category", Value: label},
			).Debug("Merchant resolved from learned map")
			return label
		}
		delete(cached, key)
		if err := c.store.SaveAll(ctx, cached); err != nil {
			c.logger.WithError(err).WithField("merchant", key).Warn("Failed to evict stale catch-all entry")
		}
	}

	// Brand table: authoritative substring matches for known merchants.
	for _, rule := range c.tables.Brands {
		if strings.Contains(key, rule.Key) {
			c.learn(ctx, key, rule.Label, "brand")
			return rule.Label
		}
	}

	// Fuzzy identity match against everything we already know: brand keys
	// and learned keys. A close-enough key means the same merchant with a
	// typo or a location suffix.
	if label, ok := c.fuzzyIdentityMatch(key, cached); ok {
		c.learn(ctx, key, label, "fuzzy")
		return label
	}

	// Generic keyword heuristics. Too low-confidence to memorize under
	// this specific merchant key, so no map write here.
	for _, rule := range c.tables.Keywords {
		if strings.Contains(key, rule.Key) {
			c.logger.WithFields(
				logging.Field{Key: "merchant", Value: key},
				logging.Field{Key: "keyword", Value: rule.Key},
				logging.Field{Key: "category", Value: rule.Label},
			).Debug("Merchant resolved by keyword heuristic")
			return rule.Label
		}
	}

	if label, ok := c.classify(ctx, key); ok {
		c.learn(ctx, key, label, "classifier")
		return label
	}

	// Out of options: tell a human, return the catch-all, and cache
	// nothing so the next occurrence re-runs the whole pipeline.
	if c.notifier != nil {
		c.notifier.NotifyUnknown(ctx, rawMerchant)
	}
	return category.Other
}

// loadMap returns the learned map, degrading to an empty map when the
// backing store is unavailable: a prediction without cache support beats
// no prediction at all.
func (c *Categorizer) loadMap(ctx context.Context) merchant.Map {
	m, err := c.store.LoadAll(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Merchant map unavailable, predicting without learned mappings")
		return merchant.Map{}
	}
	return m
}

// fuzzyIdentityMatch looks for a near-identical known key. Candidates are
// scanned brand table first (in table order), then learned keys in sorted
// order, so results are deterministic for identical inputs.
func (c *Categorizer) fuzzyIdentityMatch(key string, cached merchant.Map) (category.Label, bool) {
	candidates := make([]string, 0, len(c.tables.Brands)+len(cached))
	for _, rule := range c.tables.Brands {
		candidates = append(candidates, rule.Key)
	}
	cachedKeys := make([]string, 0, len(cached))
	for k := range cached {
		cachedKeys = append(cachedKeys, k)
	}
	sort.Strings(cachedKeys)
	candidates = append(candidates, cachedKeys...)

	match, ok := fuzzy.BestMatch(key, candidates, identityFuzzyCutoff)
	if !ok {
		return "", false
	}

	// Prefer the learned label for the matched key; fall back to the brand
	// table's.
	if label, found := cached[match]; found && label != category.Other {
		return label, true
	}
	for _, rule := range c.tables.Brands {
		if rule.Key == match {
			return rule.Label, true
		}
	}
	return "", false
}

// classify runs the optional LLM stage. The model's free-text guess is
// normalized onto the category enumeration; a guess that lands on the
// catch-all counts as no answer, so a hallucinated category can never be
// memorized.
func (c *Categorizer) classify(ctx context.Context, key string) (category.Label, bool) {
	if c.classifier == nil {
		c.logger.WithField("merchant", key).Debug("No classifier configured, skipping LLM stage")
		return "", false
	}

	guess, ok, err := c.classifier.Classify(ctx, key)
	if err != nil {
		c.logger.WithError(err).WithField("merchant", key).Warn("Classifier failed, treating as no answer")
		return "", false
	}
	if !ok {
		return "", false
	}

	label := category.MatchLabel(guess)
	if label == category.Other {
		c.logger.WithFields(
			logging.Field{Key: "merchant", Value: key},
			logging.Field{Key: "guess", Value: guess},
		).Debug("Classifier guess did not map to a concrete category")
		return "", false
	}
	return label, true
}

// learn records a resolved merchant in the persistent map. Write failures
// only cost us the cache entry, so they are logged and dropped.
func (c *Categorizer) learn(ctx context.Context, key string, label category.Label, stage string) {
	if err := c.store.Upsert(ctx, key, label); err != nil {
		c.logger.WithError(err).WithFields(
			logging.Field{Key: "merchant", Value: key},
			logging.Field{Key: "stage", Value: stage},
		).Warn("Failed to persist merchant mapping")
		return
	}
	c.logger.WithFields(
		logging.Field{Key: "merchant", Value: key},
		logging.Field{Key: "category", Value: label},
		logging.Field{Key: "stage", Value: stage},
	).Debug("Learned merchant mapping")
}
