package scores

import (
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
)

// Matcher reports whether a team reference from a boxscore or competitor
// list identifies the given team snapshot.
type Matcher interface {
	Name() string
	Match(team events.TeamSnapshot, ref events.TeamRef) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc struct {
	Label string
	Fn    func(team events.TeamSnapshot, ref events.TeamRef) bool
}

func (m MatcherFunc) Name() string { return m.Label }

func (m MatcherFunc) Match(team events.TeamSnapshot, ref events.TeamRef) bool {
	return m.Fn(team, ref)
}

var (
	// MatchByID compares ids exactly. Ids are authoritative.
	MatchByID Matcher = MatcherFunc{Label: "id", Fn: func(team events.TeamSnapshot, ref events.TeamRef) bool {
		return team.ID != "" && strings.TrimSpace(team.ID) == strings.TrimSpace(ref.ID)
	}}

	// MatchByName compares names case-insensitively, accepting equality or
	// containment in either direction. Placeholder names never match.
	MatchByName Matcher = MatcherFunc{Label: "name", Fn: func(team events.TeamSnapshot, ref events.TeamRef) bool {
		name := normalizeName(team.Name)
		if name == "" || isPlaceholder(name) {
			return false
		}
		for _, candidate := range []string{ref.DisplayName, ref.Name} {
			c := normalizeName(candidate)
			if c == "" || isPlaceholder(c) {
				continue
			}
			if c == name || strings.Contains(c, name) || strings.Contains(name, c) {
				return true
			}
		}
		return false
	}}

	// MatchByAbbreviation compares abbreviations case-insensitively.
	MatchByAbbreviation Matcher = MatcherFunc{Label: "abbreviation", Fn: func(team events.TeamSnapshot, ref events.TeamRef) bool {
		a := strings.TrimSpace(team.Abbreviation)
		return a != "" && strings.EqualFold(a, strings.TrimSpace(ref.Abbreviation))
	}}
)

// DefaultMatchers is the identity cascade: id, then name, then abbreviation.
var DefaultMatchers = []Matcher{MatchByID, MatchByName, MatchByAbbreviation}

func isPlaceholder(name string) bool {
	return name == normalizeName(events.DefaultHomeTeamName) || name == normalizeName(events.DefaultAwayTeamName)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
