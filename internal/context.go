package internal

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds a single repository round trip.
const DefaultQueryTimeout = 5 * time.Second

// WithTimeout returns a context with timeout, defaulting to DefaultQueryTimeout if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if duration <= 0 {
		duration = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, duration)
}
