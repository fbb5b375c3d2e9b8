package utils

import (
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the retry strategy. The delay
// doubles after every failed attempt, capped at MaxDelay when set.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Logger      *Logger
}

// Do executes fn, backing off between attempts until one succeeds or
// MaxAttempts is exhausted.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt >= r.MaxAttempts {
			break
		}

		r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
			operationName, attempt, r.MaxAttempts, lastErr, delay)
		time.Sleep(delay)
		delay *= 2
		if r.MaxDelay > 0 && delay > r.MaxDelay {
			delay = r.MaxDelay
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
