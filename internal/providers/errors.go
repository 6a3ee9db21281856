package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
)

var (
	// ErrUnsupportedLeague is returned for leagues outside the fixed set.
	ErrUnsupportedLeague = leagues.ErrUnsupported
	// ErrUpstreamUnavailable covers transport failures, timeouts, non-2xx
	// responses and undecodable bodies.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// UpstreamError describes a failed upstream call.
type UpstreamError struct {
	Provider   string
	StatusCode int
	URL        string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, ErrUpstreamUnavailable)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status=%d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Err}
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap makes a rate limit count as an upstream outage.
func (e *RateLimitError) Unwrap() error { return ErrUpstreamUnavailable }

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsUpstreamUnavailable reports whether err is an upstream failure that a
// secondary provider may be able to serve. Caller cancellation is not.
func IsUpstreamUnavailable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrUpstreamUnavailable)
}
