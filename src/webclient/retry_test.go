package webclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestDoWithRetrySingleAttempt(t *testing.T) {
	calls := 0
	status, _, err := DoWithRetry(context.Background(), 1, time.Millisecond, func() (int, []byte, error) {
		calls++
		return http.StatusInternalServerError, nil, nil
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if status != http.StatusInternalServerError || err != nil {
		t.Errorf("got status=%d err=%v", status, err)
	}
}

func TestDoWithRetryRecovers(t *testing.T) {
	calls := 0
	status, body, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		if calls < 3 {
			return http.StatusTooManyRequests, nil, nil
		}
		return http.StatusOK, []byte("{}"), nil
	})
	if err != nil || status != http.StatusOK || string(body) != "{}" {
		t.Fatalf("got status=%d body=%q err=%v", status, body, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoWithRetryDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	status, _, _ := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return http.StatusBadRequest, nil, nil
	})
	if calls != 1 || status != http.StatusBadRequest {
		t.Errorf("calls=%d status=%d", calls, status)
	}
}

func TestDoWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := DoWithRetry(ctx, 3, time.Hour, func() (int, []byte, error) {
		return 0, nil, errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewDefaultTimeout(t *testing.T) {
	if c := NewDefault(0); c.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v", c.Timeout)
	}
	if c := NewDefault(5 * time.Second); c.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", c.Timeout)
	}
}

func TestDoWithRetryZeroAttemptsCallsOnce(t *testing.T) {
	calls := 0
	_, _, err := DoWithRetry(context.Background(), 0, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 0, nil, errors.New("connection reset")
	})
	if calls != 1 || err == nil {
		t.Errorf("calls=%d err=%v", calls, err)
	}
}

func TestDoWithRetryReturnsLastOutcome(t *testing.T) {
	calls := 0
	status, _, err := DoWithRetry(context.Background(), 2, time.Millisecond, func() (int, []byte, error) {
		calls++
		return http.StatusServiceUnavailable, nil, nil
	})
	if calls != 2 || status != http.StatusServiceUnavailable || err != nil {
		t.Errorf("calls=%d status=%d err=%v", calls, status, err)
	}
}
