// Package ctxutil provides context helpers.
package ctxutil

import "context"

// Canceled reports whether ctx has been canceled or has exceeded its
// deadline, returning the context error if so and nil otherwise. Service
// entry points call this before doing any work so an interrupted command
// never starts a network submission.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
