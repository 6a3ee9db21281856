// Package normalize maps raw provider payloads into the canonical event and
// roster shapes. Normalization is pure: no clock reads, no randomness, and
// output ordering follows the payload.
package normalize

import (
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/rosters"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// Normalizer carries an optional logger for diagnostics.
type Normalizer struct {
	logger *slog.Logger
}

// New returns a Normalizer. A nil logger disables diagnostics.
func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

var quiet = &Normalizer{}

// Event normalizes a summary without logging.
func Event(raw *payload.Summary, league leagues.League, compositeID string) (events.Event, error) {
	return quiet.Event(raw, league, compositeID)
}

// Scoreboard normalizes a scoreboard without logging.
func Scoreboard(raw *payload.Scoreboard, league leagues.League) []events.Event {
	return quiet.Scoreboard(raw, league)
}

// Roster normalizes a roster. It never fails; a nil payload yields nil.
func Roster(raw *payload.Roster) *rosters.TeamRoster {
	return quiet.Roster(raw)
}
