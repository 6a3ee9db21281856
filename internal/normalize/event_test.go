package normalize

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

const summaryJSON = `{
	"header": {
		"id": "401585",
		"season": {"year": 2024, "type": 2},
		"league": {"id": "46", "name": "NBA", "links": [{"href": "https://espn.com/nba", "text": "NBA"}]},
		"links": [
			{"rel": ["summary", "desktop", "event"], "href": "https://espn.com/nba/game/_/gameId/401585"},
			{"rel": ["summary", "mobile"], "href": "https://m.espn.com/nba/game/401585"}
		],
		"competitions": [{
			"id": "401585",
			"date": "2024-03-01T00:30Z",
			"notes": [{"headline": "Regular Season"}],
			"status": {"period": 3, "displayClock": "4:12", "type": {"state": "in", "description": "In Progress"}},
			"competitors": [
				{"id": "13", "homeAway": "away", "score": "88",
				 "team": {"id": "13", "displayName": "Los Angeles Lakers", "abbreviation": "LAL", "color": "552583"},
				 "record": [{"type": "total", "summary": "30-29"}]},
				{"id": "2", "homeAway": "home", "score": 91,
				 "team": {"id": "2", "displayName": "Boston Celtics", "abbreviation": "BOS", "logos": [{"href": "https://img/bos.png"}]}}
			]
		}]
	},
	"gameInfo": {"venue": {"id": "1", "fullName": "TD Garden", "address": {"city": "Boston", "country": "USA"}, "capacity": 19156, "indoor": true}},
	"boxscore": {
		"teams": [
			{"team": {"id": "13", "displayName": "Los Angeles Lakers"}, "statistics": [{"name": "fieldGoalPct", "label": "FG%", "displayValue": "48.1"}]},
			{"team": {"id": "2", "displayName": "Boston Celtics"}}
		],
		"players": [{
			"team": {"id": "2"},
			"statistics": [{"name": "starters", "labels": ["MIN", "PTS"], "athletes": [
				{"athlete": {"id": "4065648", "displayName": "Jayson Tatum", "jersey": "0", "position": {"abbreviation": "SF"}}, "starter": true, "stats": ["30", "24"]}
			]}]
		}]
	},
	"plays": [{"id": "p1", "text": "Tatum makes 3", "scoringPlay": true, "homeScore": 3, "awayScore": "0", "period": {"number": 1}, "clock": {"displayValue": "11:40"}, "team": {"id": "2"}}],
	"news": {"articles": [{"id": 123, "headline": "Celtics roll", "links": {"web": {"href": "https://espn.com/story"}}, "images": [{"href": "https://img/story.png"}]}]},
	"tickets": [{"summary": "Tickets as low as $50", "links": [{"href": "https://tickets.example/401585"}]}]
}`

func decodeSummary(t *testing.T, body string) *payload.Summary {
	t.Helper()
	var s payload.Summary
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return &s
}

func TestEventMapsFullSummary(t *testing.T) {
	ev, err := Event(decodeSummary(t, summaryJSON), leagues.NBA, "nba_401585")
	require.NoError(t, err)

	assert.Equal(t, "nba_401585", ev.ID)
	assert.Equal(t, leagues.NBA, ev.League.ID)
	assert.Equal(t, "NBA", ev.League.Abbreviation)
	assert.Len(t, ev.League.ExternalLinks, 1)

	assert.Equal(t, "Boston Celtics", ev.HomeTeam.Name)
	assert.Equal(t, 91, ev.HomeTeam.Score)
	assert.True(t, ev.HomeTeam.ScoreReported)
	assert.Equal(t, "https://img/bos.png", ev.HomeTeam.LogoURL)
	assert.Equal(t, "Los Angeles Lakers", ev.AwayTeam.Name)
	assert.Equal(t, 88, ev.AwayTeam.Score)
	assert.Equal(t, []events.Record{{Type: "total", Summary: "30-29"}}, ev.AwayTeam.Record)

	assert.Equal(t, events.StateIn, ev.Status.State)
	assert.True(t, ev.Status.IsLive)
	assert.Equal(t, 3, ev.Status.Period)
	assert.Equal(t, "4:12", ev.Status.DisplayClock)
	assert.Equal(t, "2024-03-01T00:30:00Z", ev.ScheduledAt)

	assert.Equal(t, "TD Garden", ev.Venue.Name)
	assert.Equal(t, "Boston", ev.Venue.City)
	require.NotNil(t, ev.Venue.Capacity)
	assert.Equal(t, 19156, *ev.Venue.Capacity)
	assert.Equal(t, events.Season{Year: 2024, Type: 2}, ev.Season)
	assert.Equal(t, "Regular Season", ev.Description)

	require.Len(t, ev.Boxscore.Teams, 2)
	assert.Nil(t, ev.Boxscore.Teams[0].Score)
	assert.Equal(t, "FG%", ev.Boxscore.Teams[0].Statistics[0].Label)
	require.Len(t, ev.Boxscore.Players, 1)
	assert.Equal(t, "SF", ev.Boxscore.Players[0].Athletes[0].Position)

	require.Len(t, ev.PlayByPlay, 1)
	assert.Equal(t, events.Play{ID: "p1", Text: "Tatum makes 3", Period: 1, Clock: "11:40", ScoringPlay: true, HomeScore: 3, TeamID: "2"}, ev.PlayByPlay[0])

	require.Len(t, ev.News, 1)
	assert.Equal(t, "123", ev.News[0].ID)
	assert.Equal(t, "https://img/story.png", ev.News[0].ImageURL)

	assert.Len(t, ev.Competitors, 2)
	assert.Equal(t, "88", ev.Competitors[0].Score)
	assert.Equal(t, "https://espn.com/nba/game/_/gameId/401585", ev.Links.Web)
	assert.Equal(t, "https://m.espn.com/nba/game/401585", ev.Links.Mobile)
	assert.Equal(t, []string{"https://tickets.example/401585"}, ev.Links.Tickets)
}

func TestEventAssignsTeamsByHomeAwayNotPosition(t *testing.T) {
	raw := decodeSummary(t, `{"header": {"id": "1", "competitions": [{"competitors": [
		{"homeAway": "away", "team": {"id": "2"}, "score": "3"},
		{"homeAway": "home", "team": {"id": "1"}, "score": "5"}
	]}]}}`)

	ev, err := Event(raw, leagues.NHL, "nhl_1")
	require.NoError(t, err)
	assert.Equal(t, 5, ev.HomeTeam.Score)
	assert.Equal(t, "1", ev.HomeTeam.ID)
	assert.Equal(t, 3, ev.AwayTeam.Score)
	assert.Equal(t, "2", ev.AwayTeam.ID)
}

func TestEventMissingHeaderIsMalformed(t *testing.T) {
	ev, err := Event(decodeSummary(t, `{"boxscore": {}}`), leagues.NBA, "nba_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Equal(t, events.Event{}, ev)

	_, err = Event(nil, leagues.NBA, "nba_1")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventWithoutCompetitionIsMalformed(t *testing.T) {
	_, err := Event(decodeSummary(t, `{"header": {"id": "1", "competitions": []}}`), leagues.MLB, "mlb_1")
	var malformed *MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.ErrorIs(t, err, ErrNoCompetition)
	assert.Equal(t, "mlb_1", malformed.EventID)
	assert.Contains(t, err.Error(), "no competition")
}

func TestEventAppliesDefaults(t *testing.T) {
	ev, err := Event(decodeSummary(t, `{"header": {"id": "1", "competitions": [{"competitors": []}]}}`), leagues.MLS, "mls_1")
	require.NoError(t, err)

	assert.Equal(t, "Home", ev.HomeTeam.Name)
	assert.Equal(t, "Away", ev.AwayTeam.Name)
	assert.Equal(t, "", ev.HomeTeam.LogoURL)
	assert.NotNil(t, ev.HomeTeam.Record)
	assert.NotNil(t, ev.HomeTeam.Statistics)
	assert.Equal(t, events.Venue{Name: "TBD"}, ev.Venue)
	assert.Equal(t, events.Season{}, ev.Season)
	assert.Equal(t, events.StatePre, ev.Status.State)
	assert.False(t, ev.Status.IsLive)
	assert.NotNil(t, ev.News)
	assert.NotNil(t, ev.PlayByPlay)
	assert.NotNil(t, ev.Links.Tickets)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"record":[]`)
	assert.NotContains(t, string(b), `"score":null`)
}

func TestEventScoresNeverNegative(t *testing.T) {
	cases := map[string]string{
		"missing":     `{"homeAway": "home"}`,
		"null":        `{"homeAway": "home", "score": null}`,
		"non-numeric": `{"homeAway": "home", "score": "TBD"}`,
		"negative":    `{"homeAway": "home", "score": "-3"}`,
		"object":      `{"homeAway": "home", "score": {"value": -1}}`,
	}
	for name, competitor := range cases {
		t.Run(name, func(t *testing.T) {
			raw := decodeSummary(t, `{"header": {"id": "1", "competitions": [{"competitors": [`+competitor+`]}]}}`)
			ev, err := Event(raw, leagues.NFL, "nfl_1")
			require.NoError(t, err)
			assert.Equal(t, 0, ev.HomeTeam.Score)
			assert.Equal(t, 0, ev.AwayTeam.Score)
		})
	}
}

func TestEventIsIdempotent(t *testing.T) {
	raw := decodeSummary(t, summaryJSON)
	first, err := Event(raw, leagues.NBA, "nba_401585")
	require.NoError(t, err)
	second, err := Event(raw, leagues.NBA, "nba_401585")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreboardSkipsMalformedEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	board := &payload.Scoreboard{Events: []payload.ScoreboardEvent{
		{ID: "1", Competitions: []payload.Competition{{Competitors: []payload.Competitor{{HomeAway: "home", Score: payload.NewScore(2)}}}}},
		{ID: "2"},
	}}
	out := New(logger).Scoreboard(board, leagues.NHL)

	require.Len(t, out, 1)
	assert.Equal(t, "nhl_1", out[0].ID)
	assert.Equal(t, 2, out[0].HomeTeam.Score)
	assert.Contains(t, buf.String(), "nhl_2")

	assert.NotNil(t, Scoreboard(nil, leagues.NHL))
}
