package conveyor

import (
	"context"
	"log/slog"

	"github.com/xraph/conveyor/middleware"
)

// Option configures a Queue.
type Option func(*Queue)

// WithConcurrency sets the maximum number of tasks executed at once.
// The default is 10; values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(q *Queue) { q.config.Concurrency = n }
}

// WithRateLimit caps sustained task starts per second with a token
// bucket. burst defaults to 1 when not positive.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(q *Queue) {
		q.config.RateLimit = perSecond
		q.config.RateBurst = burst
	}
}

// WithLogger sets the structured logger for the queue.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) { q.logger = l }
}

// WithHooks attaches lifecycle hooks at construction time. Hooks can
// be replaced later with [Queue.SetHooks].
func WithHooks(h Hooks) Option {
	return func(q *Queue) { q.hooks = h }
}

// WithMiddleware adds middleware around every task invocation, applied
// right-to-left after the queue's own panic recovery.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(q *Queue) { q.mws = append(q.mws, mws...) }
}

// WithBaseContext sets the context task invocations derive from. The
// default is context.Background(). The queue never cancels this
// context; Kill does not stop in-flight tasks.
func WithBaseContext(ctx context.Context) Option {
	return func(q *Queue) { q.baseCtx = ctx }
}
