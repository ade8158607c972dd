package webclient

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultRetryDelay = 2 * time.Second
	maxRetryDelay     = 30 * time.Second
)

type AttemptFunc func() (status int, body []byte, err error)

// Retryable reports whether a response status is worth another attempt.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// DoWithRetry runs fn once when attempts <= 1, which keeps replies
// at-most-once. With more attempts, transport errors and 429/5xx answers
// are retried with doubling delay starting at delay. The last outcome is
// returned as-is; a cancelled ctx ends the wait with ctx.Err().
func DoWithRetry(ctx context.Context, attempts int, delay time.Duration, fn AttemptFunc) (int, []byte, error) {
	status, body, err := fn()
	if attempts <= 1 {
		return status, body, err
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	for left := attempts - 1; left > 0 && (err != nil || Retryable(status)); left-- {
		if werr := sleep(ctx, delay); werr != nil {
			return status, body, werr
		}
		delay = min(delay*2, maxRetryDelay)
		status, body, err = fn()
	}
	return status, body, err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
