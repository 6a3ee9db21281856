package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// ProviderName identifies the fixture provider.
const ProviderName = "fixture"

// Provider returns a static set of events useful for local testing and
// running without network access.
type Provider struct {
	now func() time.Time
}

var _ providers.Provider = (*Provider)(nil)

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Name implements providers.Provider.
func (p *Provider) Name() string { return ProviderName }

// FetchScoreboard returns one scheduled and one final event for the league.
func (p *Provider) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	start := p.now().UTC().Truncate(time.Hour)
	return &payload.Scoreboard{
		Day: &payload.Day{Date: start.Format("2006-01-02")},
		Events: []payload.ScoreboardEvent{
			fixtureEvent(league, "fixture-1", start.Add(2*time.Hour), "pre", "Scheduled", nil),
			fixtureEvent(league, "fixture-2", start.Add(-3*time.Hour), "post", "Final", []int{101, 97}),
		},
	}, nil
}

// FetchEventSummary returns the matching scoreboard entry as a summary, or
// an empty summary for unknown ids.
func (p *Provider) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	board, err := p.FetchScoreboard(ctx, league)
	if err != nil {
		return nil, err
	}
	for _, ev := range board.Events {
		if ev.ID == providerEventID {
			return ev.AsSummary(), nil
		}
	}
	return &payload.Summary{}, nil
}

// FetchTeamRoster returns a two-player roster for any team.
func (p *Provider) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	return &payload.Roster{
		Team:  &payload.Team{ID: teamID, DisplayName: "Fixture Team " + teamID, Abbreviation: "FIX"},
		Coach: []payload.Coach{{ID: "c-1", FirstName: "Pat", LastName: "Coach", Experience: 4}},
		Athletes: []payload.AthleteGroup{{
			Items: []payload.Athlete{
				{ID: "player-1", DisplayName: "Jane Doe", Jersey: "1", Position: &payload.Position{Abbreviation: "G", Name: "Guard"},
					Raw: map[string]any{"id": "player-1", "displayName": "Jane Doe"}},
				{ID: "player-2", DisplayName: "John Smith", Jersey: "23", Position: &payload.Position{Abbreviation: "F", Name: "Forward"},
					Raw: map[string]any{"id": "player-2", "displayName": "John Smith"}},
			},
		}},
	}, nil
}

func fixtureEvent(league leagues.League, id string, at time.Time, state, desc string, score []int) payload.ScoreboardEvent {
	home := payload.Competitor{ID: "home-" + id, HomeAway: "home", Team: &payload.Team{ID: "home-" + id, DisplayName: "Home " + league.Abbreviation(), Abbreviation: "HOM"}}
	away := payload.Competitor{ID: "away-" + id, HomeAway: "away", Team: &payload.Team{ID: "away-" + id, DisplayName: "Away " + league.Abbreviation(), Abbreviation: "AWY"}}
	if len(score) == 2 {
		home.Score = payload.NewScore(score[0])
		away.Score = payload.NewScore(score[1])
	}
	date := at.Format(time.RFC3339)
	return payload.ScoreboardEvent{
		ID:   id,
		Date: date,
		Name: away.Team.DisplayName + " at " + home.Team.DisplayName,
		Competitions: []payload.Competition{{
			ID:          id,
			Date:        date,
			Competitors: []payload.Competitor{home, away},
			Status: &payload.Status{Type: payload.StatusType{
				State:       state,
				Completed:   state == "post",
				Description: desc,
			}},
		}},
	}
}
