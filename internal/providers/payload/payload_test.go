package payload

import (
	"encoding/json"
	"testing"
)

func TestScoreDecodesProviderShapes(t *testing.T) {
	cases := []struct {
		in    string
		value int
		valid bool
	}{
		{`"102"`, 102, true},
		{`98`, 98, true},
		{`"7.0"`, 7, true},
		{`{"value": 3.0, "displayValue": "3"}`, 3, true},
		{`{"displayValue": "11"}`, 11, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, false},
		{`-4`, -4, true},
		{`true`, 0, false},
	}
	for _, tc := range cases {
		var s Score
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if s.Value != tc.value || s.Valid != tc.valid {
			t.Fatalf("%s: got %+v, want value=%d valid=%v", tc.in, s, tc.value, tc.valid)
		}
	}
}

func TestParseScoreFromText(t *testing.T) {
	if got := ParseScore(" 21 "); !got.Valid || got.Value != 21 || got.Raw != " 21 " {
		t.Fatalf("unexpected score %+v", got)
	}
	if got := ParseScore("TBD"); got.Valid || got.Raw != "TBD" {
		t.Fatalf("expected invalid score keeping text, got %+v", got)
	}
	if got := ParseScore(""); got.Valid || got.Raw != "" {
		t.Fatalf("expected empty invalid score, got %+v", got)
	}
}

func TestScoreAbsentFieldIsInvalid(t *testing.T) {
	var c Competitor
	if err := json.Unmarshal([]byte(`{"id": "1", "homeAway": "home"}`), &c); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if c.Score.Valid {
		t.Fatalf("expected absent score to be invalid, got %+v", c.Score)
	}
}

func TestScoreMarshalKeepsRawText(t *testing.T) {
	b, err := json.Marshal(struct {
		A Score `json:"a"`
		B Score `json:"b"`
	}{A: NewScore(5)})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if string(b) != `{"a":"5","b":null}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id": 38812, "headline": "h"}`), &a); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if a.ID.String() != "38812" {
		t.Fatalf("expected numeric id as string, got %q", a.ID)
	}
	if err := json.Unmarshal([]byte(`{"id": "abc"}`), &a); err != nil || a.ID != "abc" {
		t.Fatalf("expected string id, got %q %v", a.ID, err)
	}
}

func TestRosterDecodesFlatAthletes(t *testing.T) {
	var r Roster
	body := `{
		"team": {"id": "2"},
		"athletes": [
			{"id": "1", "displayName": "A", "position": {"abbreviation": "G"}, "contract": {"salary": 1000}},
			{"id": 2, "displayName": "B"}
		]
	}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(r.Athletes) != 1 || r.Athletes[0].Position != "" || len(r.Athletes[0].Items) != 2 {
		t.Fatalf("expected a single unnamed group, got %+v", r.Athletes)
	}
	first := r.Athletes[0].Items[0]
	if first.Position.Abbreviation != "G" {
		t.Fatalf("unexpected position %+v", first.Position)
	}
	contract, ok := first.Raw["contract"].(map[string]any)
	if !ok || contract["salary"] != json.Number("1000") {
		t.Fatalf("expected raw passthrough, got %+v", first.Raw)
	}
	if r.Athletes[0].Items[1].ID != "2" {
		t.Fatalf("expected numeric id, got %q", r.Athletes[0].Items[1].ID)
	}
}

func TestRosterDecodesGroupedAthletes(t *testing.T) {
	var r Roster
	body := `{"athletes": [
		{"position": "offense", "items": [{"id": "1"}]},
		{"position": "specialTeam", "items": []}
	]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(r.Athletes) != 2 || r.Athletes[1].Position != "specialTeam" {
		t.Fatalf("unexpected groups %+v", r.Athletes)
	}
}

func TestAsSummaryCarriesCompetitionVenue(t *testing.T) {
	ev := ScoreboardEvent{
		ID:           "1",
		Competitions: []Competition{{ID: "1", Venue: &Venue{FullName: "Arena"}}},
	}
	s := ev.AsSummary()
	if s.Header.ID != "1" || s.GameInfo.Venue.FullName != "Arena" {
		t.Fatalf("unexpected summary %+v", s)
	}
	if empty := (ScoreboardEvent{ID: "2"}).AsSummary(); empty.GameInfo.Venue != nil {
		t.Fatal("expected nil venue without competitions")
	}
}
