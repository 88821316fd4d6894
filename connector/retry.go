package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Konsultn-Engineering/sqlmapper/logger"
)

// newBackOff builds an exponential policy from cfg. A zero MaxRetries means
// a single attempt.
func newBackOff(ctx context.Context, cfg RetryConfig) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	if cfg.BaseDelay > 0 {
		b.InitialInterval = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		b.MaxInterval = cfg.MaxDelay
	}
	b.Multiplier = 2
	if cfg.Backoff > 1 {
		b.Multiplier = cfg.Backoff
	}
	// Attempts are bounded by MaxRetries, not elapsed time.
	b.MaxElapsedTime = 0

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func retryConnect(ctx context.Context, cfg RetryConfig, connectFn func(context.Context) (Connection, error)) (Connection, error) {
	var conn Connection
	attempt := 0

	err := backoff.RetryNotify(func() error {
		attempt++
		c, err := connectFn(ctx)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, newBackOff(ctx, cfg), func(err error, next time.Duration) {
		logger.Log.Warn("Failed connecting to database, retrying", logger.Ctx{"attempt": attempt, "retry_in": next, "err": err})
	})
	if err != nil {
		return nil, fmt.Errorf("connect failed after %d attempts: %w", attempt, err)
	}
	return conn, nil
}
