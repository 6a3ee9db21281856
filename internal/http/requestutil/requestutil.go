// Package requestutil holds request parsing shared by middleware and handlers.
package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
var useFallback atomic.Bool

// SanitizeRequestID validates the incoming request ID header and generates a new one when invalid.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID with a time-based fallback.
func NewRequestID() string {
	var b [8]byte
	if !useFallback.Load() {
		if _, err := rand.Read(b[:]); err == nil {
			return hex.EncodeToString(b[:])
		}
	}
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// ClientIP extracts the client IP from X-Forwarded-For or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// LeaguesParam reads a comma separated ?leagues= list. An absent or blank
// parameter yields fallback; any unsupported entry fails the whole list.
func LeaguesParam(r *http.Request, fallback []leagues.League) ([]leagues.League, error) {
	raw := r.URL.Query().Get("leagues")
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	list, err := leagues.ParseList(raw)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return fallback, nil
	}
	return dedupe(list), nil
}

func dedupe(list []leagues.League) []leagues.League {
	seen := make(map[leagues.League]bool, len(list))
	out := list[:0]
	for _, l := range list {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}
