// Package scores picks the authoritative score for an event from the several
// places a provider may report it.
package scores

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
)

// Source names which part of the payload supplied the score.
type Source string

const (
	SourceEventTeams       Source = "eventTeams"
	SourceBoxMatched       Source = "boxMatched"
	SourceBoxIndexFallback Source = "boxIndexFallback"
	SourceCompetitors      Source = "competitors"
	SourceNone             Source = "none"
)

// Result is a resolved score. Values are never negative.
type Result struct {
	Home   int    `json:"homeScore"`
	Away   int    `json:"awayScore"`
	Source Source `json:"source"`
}

// Resolver applies the source priority with an ordered matcher chain.
type Resolver struct {
	matchers []Matcher
}

// NewResolver builds a resolver. With no matchers it uses DefaultMatchers.
func NewResolver(matchers ...Matcher) *Resolver {
	if len(matchers) == 0 {
		matchers = DefaultMatchers
	}
	return &Resolver{matchers: append([]Matcher(nil), matchers...)}
}

var defaultResolver = NewResolver()

// Resolve uses the default matcher chain.
func Resolve(ev events.Event) Result {
	return defaultResolver.Resolve(ev)
}

// Resolve returns the first source that yields a value for either side:
// event teams, boxscore matched by identity, boxscore by position,
// competitors, then none. Boxscore entries without a score yield nothing,
// so the resolver moves on to the competitor list. It never fails.
func (r *Resolver) Resolve(ev events.Event) Result {
	if ev.HomeTeam.ScoreReported || ev.AwayTeam.ScoreReported {
		return Result{
			Home:   reported(ev.HomeTeam),
			Away:   reported(ev.AwayTeam),
			Source: SourceEventTeams,
		}
	}

	if teams := ev.Boxscore.Teams; len(teams) > 0 {
		home, homeIdx := r.matchBox(ev.HomeTeam, teams, -1)
		away, awayIdx := r.matchBox(ev.AwayTeam, teams, homeIdx)
		homeMatched, awayMatched := homeIdx >= 0, awayIdx >= 0
		if hasScore(home) || hasScore(away) {
			return Result{Home: boxValue(home), Away: boxValue(away), Source: SourceBoxMatched}
		}
		// Positional fallback: assumes teams[0] is home and teams[1] is away.
		// Providers do not guarantee this order.
		if !homeMatched && !awayMatched && len(teams) >= 2 && (hasScore(&teams[0]) || hasScore(&teams[1])) {
			return Result{Home: boxValue(&teams[0]), Away: boxValue(&teams[1]), Source: SourceBoxIndexFallback}
		}
	}

	if res, ok := r.fromCompetitors(ev); ok {
		return res
	}
	return Result{Source: SourceNone}
}

// matchBox returns the first entry the matcher chain binds to team, skipping
// the entry already claimed by the other side. The index is -1 on no match.
func (r *Resolver) matchBox(team events.TeamSnapshot, entries []events.TeamBoxscore, claimed int) (*events.TeamBoxscore, int) {
	for _, m := range r.matchers {
		for i := range entries {
			if i != claimed && m.Match(team, entries[i].Team) {
				return &entries[i], i
			}
		}
	}
	return nil, -1
}

func (r *Resolver) fromCompetitors(ev events.Event) (Result, bool) {
	if len(ev.Competitors) == 0 {
		return Result{}, false
	}
	home, homeIdx := r.competitorFor(ev.HomeTeam, "home", ev.Competitors, -1)
	away, awayIdx := r.competitorFor(ev.AwayTeam, "away", ev.Competitors, homeIdx)
	if homeIdx < 0 && awayIdx < 0 {
		return Result{}, false
	}
	return Result{Home: home, Away: away, Source: SourceCompetitors}, true
}

// competitorFor prefers the homeAway discriminator, then the matcher chain.
// It returns the score and the index of the competitor used, or -1.
func (r *Resolver) competitorFor(team events.TeamSnapshot, side string, list []events.Competitor, claimed int) (int, int) {
	for i, c := range list {
		if i != claimed && strings.EqualFold(strings.TrimSpace(c.HomeAway), side) {
			if v, ok := parseScore(c.Score); ok {
				return v, i
			}
		}
	}
	for _, m := range r.matchers {
		for i, c := range list {
			if i == claimed || !m.Match(team, c.Team) {
				continue
			}
			if v, ok := parseScore(c.Score); ok {
				return v, i
			}
		}
	}
	return 0, -1
}

func reported(t events.TeamSnapshot) int {
	if !t.ScoreReported {
		return 0
	}
	return clamp(t.Score)
}

func hasScore(entry *events.TeamBoxscore) bool {
	return entry != nil && entry.Score != nil
}

func boxValue(entry *events.TeamBoxscore) int {
	if entry == nil || entry.Score == nil {
		return 0
	}
	return clamp(*entry.Score)
}

func parseScore(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return clamp(v), true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return clamp(int(f)), true
	}
	return 0, false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
