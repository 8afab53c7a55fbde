package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs task start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *Invocation, next Handler) (any, error) {
		logger.Info("task started",
			slog.String("task_name", inv.Name),
		)

		start := time.Now()
		resp, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("task failed",
				slog.String("task_name", inv.Name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("task completed",
				slog.String("task_name", inv.Name),
				slog.Duration("elapsed", elapsed),
			)
		}

		return resp, err
	}
}
