package testutil

import (
	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

var stateDescriptions = map[string]string{
	"pre":  "Scheduled",
	"in":   "In Progress",
	"post": "Final",
}

// SampleSummary builds a summary for a Boston (home) vs Los Angeles (away)
// game in the given state. Scores are omitted for scheduled games.
func SampleSummary(providerID, state, clock string, home, away int) *payload.Summary {
	return SampleScoreboardEvent(providerID, state, clock, home, away).AsSummary()
}

// SampleScoreboardEvent is the scoreboard-entry form of SampleSummary.
func SampleScoreboardEvent(providerID, state, clock string, home, away int) payload.ScoreboardEvent {
	homeC := payload.Competitor{
		ID:       "2",
		HomeAway: "home",
		Team:     &payload.Team{ID: "2", Name: "Celtics", DisplayName: "Boston Celtics", Abbreviation: "BOS"},
	}
	awayC := payload.Competitor{
		ID:       "13",
		HomeAway: "away",
		Team:     &payload.Team{ID: "13", Name: "Lakers", DisplayName: "Los Angeles Lakers", Abbreviation: "LAL"},
	}
	period := 0
	if state != "pre" {
		homeC.Score = payload.NewScore(home)
		awayC.Score = payload.NewScore(away)
		period = 4
	}
	return payload.ScoreboardEvent{
		ID:   providerID,
		Date: "2024-03-01T00:30Z",
		Name: "Los Angeles Lakers at Boston Celtics",
		Competitions: []payload.Competition{{
			ID:          providerID,
			Date:        "2024-03-01T00:30Z",
			Competitors: []payload.Competitor{homeC, awayC},
			Status: &payload.Status{
				Period:       period,
				DisplayClock: clock,
				Type: payload.StatusType{
					State:       state,
					Completed:   state == "post",
					Description: stateDescriptions[state],
				},
			},
			Venue: &payload.Venue{ID: "1824", FullName: "TD Garden", Address: &payload.Address{City: "Boston", Country: "USA"}, Indoor: true},
		}},
	}
}

// SampleScoreboard wraps scoreboard entries with a day.
func SampleScoreboard(entries ...payload.ScoreboardEvent) *payload.Scoreboard {
	return &payload.Scoreboard{Day: &payload.Day{Date: "2024-02-29"}, Events: entries}
}

// SampleRoster returns a one-group roster with two athletes.
func SampleRoster(teamID string) *payload.Roster {
	return &payload.Roster{
		Team: &payload.Team{ID: teamID, DisplayName: "Boston Celtics", Abbreviation: "BOS"},
		Athletes: []payload.AthleteGroup{{
			Items: []payload.Athlete{
				{ID: "4065648", DisplayName: "Jayson Tatum", Jersey: "0", Position: &payload.Position{Name: "Small Forward", Abbreviation: "SF"}},
				{ID: "3917376", DisplayName: "Jaylen Brown", Jersey: "7", Position: &payload.Position{Name: "Shooting Guard", Abbreviation: "SG"}},
			},
		}},
	}
}

// SampleEvent returns an already normalized live event.
func SampleEvent(league leagues.League, providerID string, home, away int) events.Event {
	return events.Event{
		ID:       events.ComposeID(league, providerID),
		League:   events.LeagueInfo{ID: league, Name: league.Name(), Abbreviation: league.Abbreviation(), ExternalLinks: []events.Link{}},
		HomeTeam: events.TeamSnapshot{ID: "2", Name: "Boston Celtics", Abbreviation: "BOS", Score: home, ScoreReported: true},
		AwayTeam: events.TeamSnapshot{ID: "13", Name: "Los Angeles Lakers", Abbreviation: "LAL", Score: away, ScoreReported: true},
		Status:   events.NewStatus("In Progress", events.StateIn, 3, "5:00"),
	}
}
