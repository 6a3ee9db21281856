package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// SummaryStep is one scripted response from StubProvider.FetchEventSummary.
type SummaryStep struct {
	Summary *payload.Summary
	Err     error
}

// StubProvider is a scripted providers.Provider. Summaries are served in
// order and the last step repeats once the script runs out.
type StubProvider struct {
	NameVal       string
	Scoreboards   map[leagues.League]*payload.Scoreboard
	ScoreboardErr map[leagues.League]error
	Summaries     []SummaryStep
	Roster        *payload.Roster
	RosterErr     error
	// Notify receives a non-blocking signal after every summary fetch.
	Notify chan struct{}

	mu              sync.Mutex
	scoreboardCalls int
	summaryCalls    int
	rosterCalls     int
}

var _ providers.Provider = (*StubProvider)(nil)

func (p *StubProvider) Name() string {
	if p.NameVal == "" {
		return "stub"
	}
	return p.NameVal
}

func (p *StubProvider) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scoreboardCalls++
	if err := p.ScoreboardErr[league]; err != nil {
		return nil, err
	}
	if board, ok := p.Scoreboards[league]; ok {
		return board, nil
	}
	return &payload.Scoreboard{}, nil
}

func (p *StubProvider) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	p.mu.Lock()
	step := SummaryStep{Summary: &payload.Summary{}}
	if n := len(p.Summaries); n > 0 {
		idx := p.summaryCalls
		if idx >= n {
			idx = n - 1
		}
		step = p.Summaries[idx]
	}
	p.summaryCalls++
	p.mu.Unlock()

	if p.Notify != nil {
		select {
		case p.Notify <- struct{}{}:
		default:
		}
	}
	return step.Summary, step.Err
}

func (p *StubProvider) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rosterCalls++
	if p.RosterErr != nil {
		return nil, p.RosterErr
	}
	return p.Roster, nil
}

// ScoreboardCalls reports how many scoreboard fetches reached the stub.
func (p *StubProvider) ScoreboardCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scoreboardCalls
}

// SummaryCalls reports how many summary fetches reached the stub.
func (p *StubProvider) SummaryCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summaryCalls
}

// RosterCalls reports how many roster fetches reached the stub.
func (p *StubProvider) RosterCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rosterCalls
}

// TotalCalls sums every fetch that passed league validation.
func (p *StubProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scoreboardCalls + p.summaryCalls + p.rosterCalls
}

// UnavailableProvider fails every call with ErrUpstreamUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) Name() string { return "unavailable" }

func (UnavailableProvider) FetchScoreboard(context.Context, leagues.League) (*payload.Scoreboard, error) {
	return nil, providers.ErrUpstreamUnavailable
}

func (UnavailableProvider) FetchEventSummary(context.Context, leagues.League, string) (*payload.Summary, error) {
	return nil, providers.ErrUpstreamUnavailable
}

func (UnavailableProvider) FetchTeamRoster(context.Context, leagues.League, string) (*payload.Roster, error) {
	return nil, providers.ErrUpstreamUnavailable
}
