package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *Invocation, next Handler) (resp any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("task panicked",
					slog.String("task_name", inv.Name),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				resp = nil
				retErr = fmt.Errorf("panic in task %s: %v", inv.Name, r)
			}
		}()
		return next(ctx)
	}
}
