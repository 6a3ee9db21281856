package providers

import (
	"context"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// Provider fetches raw league data from an upstream source. Implementations
// issue exactly one request per call and never retry. An unsupported league
// must fail with ErrUnsupportedLeague before any I/O.
type Provider interface {
	Name() string
	FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error)
	FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error)
	FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error)
}

// CheckLeague validates a league before a provider touches the network.
func CheckLeague(league leagues.League) error {
	if !league.Valid() {
		return &unsupportedLeagueError{league: string(league)}
	}
	return nil
}

type unsupportedLeagueError struct {
	league string
}

func (e *unsupportedLeagueError) Error() string {
	return ErrUnsupportedLeague.Error() + ": " + e.league
}

func (e *unsupportedLeagueError) Unwrap() error { return ErrUnsupportedLeague }
