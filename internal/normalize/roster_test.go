package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

func TestRosterKeepsGroupsAndRawData(t *testing.T) {
	var raw payload.Roster
	require.NoError(t, json.Unmarshal([]byte(`{
		"team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"},
		"coach": [{"id": "c1", "firstName": "Andy", "lastName": "Reid", "experience": 26}],
		"athletes": [
			{"position": "offense", "items": [{
				"id": "3139477", "displayName": "Patrick Mahomes", "jersey": "15",
				"position": {"name": "Quarterback", "abbreviation": "QB"},
				"headshot": {"href": "https://img/mahomes.png"},
				"displayHeight": "6' 2\"", "displayWeight": "225 lbs", "age": 28,
				"status": {"name": "Active"}, "college": {"name": "Texas Tech"},
				"experience": {"years": 7},
				"draft": {"year": 2017, "round": 1}
			}]},
			{"position": "defense", "items": []}
		]
	}`), &raw))

	roster := Roster(&raw)
	require.NotNil(t, roster)
	assert.Equal(t, "Kansas City Chiefs", roster.Team.Name)
	assert.Equal(t, 0, roster.Team.Score)
	require.Len(t, roster.Coaches, 1)
	assert.Equal(t, "Reid", roster.Coaches[0].LastName)

	require.Len(t, roster.Athletes, 2)
	assert.Equal(t, "offense", roster.Athletes[0].Position)
	assert.Equal(t, "defense", roster.Athletes[1].Position)
	assert.Empty(t, roster.Athletes[1].Players)

	p := roster.Athletes[0].Players[0]
	assert.Equal(t, "3139477", p.ID)
	assert.Equal(t, "QB", p.Position)
	assert.Equal(t, "https://img/mahomes.png", p.Headshot)
	assert.Equal(t, 28, p.Age)
	assert.Equal(t, "Active", p.Status)
	assert.Equal(t, "Texas Tech", p.College)
	assert.Equal(t, 7, p.Experience.Years)
	assert.Contains(t, p.RawData, "draft")
	assert.Equal(t, 1, roster.PlayerCount())
}

func TestRosterNilIsNil(t *testing.T) {
	assert.Nil(t, Roster(nil))
}
