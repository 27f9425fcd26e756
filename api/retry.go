package api

import (
	"context"
	"time"

	"github.com/askdesk/askdesk-go/consts"
	"github.com/askdesk/askdesk-go/ecode"
)

// Retry runs fn up to maxRetries+1 times with exponential backoff,
// stopping early on success, context cancellation, or a failure kind
// that retrying cannot fix. Intended for idempotent reads.
func Retry(ctx context.Context, fn func() error, maxRetries int, delay time.Duration) error {
	if maxRetries <= 0 {
		maxRetries = consts.MaxRetries
	}
	if delay <= 0 {
		delay = consts.RetryDelay
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ecode.FromTransport(ctx.Err())
		case <-time.After(delay << attempt):
		}
	}
	return lastErr
}

// retryable limits retries to transient transport failures
func retryable(err error) bool {
	switch ecode.KindOf(err) {
	case ecode.Network, ecode.Timeout:
		return true
	}
	return false
}
