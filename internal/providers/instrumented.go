package providers

import (
	"context"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

type instrumentedProvider struct {
	next     Provider
	recorder *metrics.Recorder
}

// NewInstrumented records attempts, latency and rate limits for every call.
func NewInstrumented(next Provider, recorder *metrics.Recorder) Provider {
	return &instrumentedProvider{next: next, recorder: recorder}
}

func (p *instrumentedProvider) Name() string { return p.next.Name() }

func (p *instrumentedProvider) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	return attempt(p.recorder, p.next, func(n Provider) (*payload.Scoreboard, error) {
		return n.FetchScoreboard(ctx, league)
	})
}

func (p *instrumentedProvider) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	return attempt(p.recorder, p.next, func(n Provider) (*payload.Summary, error) {
		return n.FetchEventSummary(ctx, league, providerEventID)
	})
}

func (p *instrumentedProvider) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	return attempt(p.recorder, p.next, func(n Provider) (*payload.Roster, error) {
		return n.FetchTeamRoster(ctx, league, teamID)
	})
}
