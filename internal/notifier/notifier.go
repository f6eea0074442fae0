// Package notifier sends the unknown-merchant side-channel prompt so a
// human can supply a category mapping out-of-band.
package notifier

import "context"

// Notifier announces a merchant the pipeline could not categorize.
// Implementations are fire-and-forget: they never return an error and
// never block the caller beyond a short fixed timeout.
type Notifier interface {
	NotifyUnknown(ctx context.Context, rawMerchant string)
}

// Noop is a Notifier that does nothing, used when the side channel is not
// configured.
type Noop struct{}

// NotifyUnknown does nothing.
func (Noop) NotifyUnknown(context.Context, string) {}
