// Package classifier provides the optional last-resort merchant classifier
// backed by a language model.
package classifier

import "context"

// Classifier guesses a spending category for a normalized merchant name.
// The guess is free text and must be normalized onto the category
// enumeration by the caller before use.
type Classifier interface {
	// Classify returns a category guess for the merchant, ok=false when the
	// model has no answer. Transport failures and malformed responses are
	// reported through err but still count as "no answer": callers log and
	// continue, they never abort on a classifier error.
	Classify(ctx context.Context, merchant string) (guess string, ok bool, err error)
}
