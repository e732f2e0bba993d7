package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/recipebox/pkg/logger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WaitFor pings db until it answers, trying at most attempts times with
// interval between tries. It gives up early when ctx is done.
func WaitFor(ctx context.Context, db Pinger, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			logger.WithCtx(ctx).Info("database available", "attempt", i)
			return nil
		}
		logger.WithCtx(ctx).Warn("database unavailable, waiting", "attempt", i, "error", err.Error())

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database: wait: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("database: unavailable after %d attempts: %w", attempts, err)
}
