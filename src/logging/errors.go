package logging

import (
	"errors"
	"net/http"
	"strings"
)

type statusError interface {
	HTTPStatus() int
}

// IsRateLimit reports whether err is a platform throttling response.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var se statusError
	if errors.As(err, &se) {
		return se.HTTPStatus() == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}
