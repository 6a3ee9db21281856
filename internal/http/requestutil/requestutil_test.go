package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected generated request id")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestLeaguesParam(t *testing.T) {
	fallback := []leagues.League{leagues.NBA}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard", nil)
	if got, err := LeaguesParam(req, fallback); err != nil || len(got) != 1 || got[0] != leagues.NBA {
		t.Fatalf("expected fallback, got %v %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard?leagues=NHL,nfl,nhl", nil)
	got, err := LeaguesParam(req, fallback)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 2 || got[0] != leagues.NHL || got[1] != leagues.NFL {
		t.Fatalf("expected deduped ordered leagues, got %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard?leagues=nba,xfl", nil)
	if _, err := LeaguesParam(req, fallback); !errors.Is(err, leagues.ErrUnsupported) {
		t.Fatalf("expected unsupported league, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard?leagues=,", nil)
	if got, err := LeaguesParam(req, fallback); err != nil || len(got) != 1 {
		t.Fatalf("expected fallback for empty list, got %v %v", got, err)
	}
}
