package dbx

import (
	"context"
	"time"
)

// WithTimeout bounds a storage call with d when d > 0, otherwise the
// context is returned unchanged. The cancel func is always safe to call.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
