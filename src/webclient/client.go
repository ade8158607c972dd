package webclient

import (
	"net/http"
	"time"
)

// DefaultTimeout applies when NewDefault is given zero.
const DefaultTimeout = 30 * time.Second

// NewDefault returns an HTTP client with the given timeout.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
