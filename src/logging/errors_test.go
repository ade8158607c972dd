package logging

import (
	"errors"
	"fmt"
	"testing"
)

type fakeStatus int

func (f fakeStatus) Error() string   { return fmt.Sprintf("status %d", int(f)) }
func (f fakeStatus) HTTPStatus() int { return int(f) }

func TestIsRateLimit(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{errors.New("rate_limit exceeded"), true},
		{fakeStatus(429), true},
		{fmt.Errorf("push: %w", fakeStatus(429)), true},
		{fakeStatus(400), false},
	}
	for _, c := range cases {
		if got := IsRateLimit(c.err); got != c.want {
			t.Errorf("IsRateLimit(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
