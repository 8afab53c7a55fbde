package middleware

import (
	"context"
	"time"
)

// Timeout returns middleware that enforces a per-task execution
// deadline. A context.WithTimeout wraps the handler call; when the
// deadline is exceeded the context is cancelled and the task body
// should return context.DeadlineExceeded. A non-positive duration
// makes the middleware a pass-through.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *Invocation, next Handler) (any, error) {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
