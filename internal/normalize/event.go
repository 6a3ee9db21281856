package normalize

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const (
	homeSide = "home"
	awaySide = "away"

	defaultVenueName = "TBD"
)

// Event maps a raw summary into an Event. A missing header or competition
// is a *MalformedPayloadError; every other gap gets a default.
func (n *Normalizer) Event(raw *payload.Summary, league leagues.League, compositeID string) (events.Event, error) {
	if raw == nil || raw.Header == nil {
		return events.Event{}, &MalformedPayloadError{EventID: compositeID, Reason: ErrEventNotFound}
	}
	if len(raw.Header.Competitions) == 0 {
		return events.Event{}, &MalformedPayloadError{EventID: compositeID, Reason: ErrNoCompetition}
	}
	comp := raw.Header.Competitions[0]

	homeRaw, awayRaw := splitCompetitors(comp.Competitors)

	return events.Event{
		ID:          compositeID,
		League:      leagueInfo(league, raw.Header.League),
		HomeTeam:    teamSnapshot(homeRaw, events.DefaultHomeTeamName),
		AwayTeam:    teamSnapshot(awayRaw, events.DefaultAwayTeamName),
		Status:      status(comp.Status),
		ScheduledAt: timeutil.NormalizeTimestamp(comp.Date),
		Venue:       venue(raw.GameInfo, comp.Venue),
		Season:      season(raw.Header.Season),
		Description: description(comp.Notes),
		Boxscore:    boxscore(raw.Boxscore),
		PlayByPlay:  plays(raw.Plays),
		News:        n.news(raw.News, compositeID),
		Competitors: competitors(comp.Competitors),
		Links:       links(raw.Header.Links, raw.Tickets),
	}, nil
}

// Scoreboard normalizes each scoreboard entry. Entries that cannot be
// normalized are skipped and logged; the board itself never fails.
func (n *Normalizer) Scoreboard(raw *payload.Scoreboard, league leagues.League) []events.Event {
	out := make([]events.Event, 0)
	if raw == nil {
		return out
	}
	for _, entry := range raw.Events {
		id := events.ComposeID(league, entry.ID)
		ev, err := n.Event(entry.AsSummary(), league, id)
		if err != nil {
			logging.Warn(n.logger, "skipping malformed scoreboard event",
				slog.String(logging.FieldLeague, string(league)),
				slog.String(logging.FieldEventID, id),
				slog.String(logging.FieldReason, err.Error()),
			)
			continue
		}
		out = append(out, ev)
	}
	return out
}

// splitCompetitors assigns roles by the homeAway discriminator only.
func splitCompetitors(list []payload.Competitor) (home, away *payload.Competitor) {
	for i := range list {
		switch strings.ToLower(strings.TrimSpace(list[i].HomeAway)) {
		case homeSide:
			if home == nil {
				home = &list[i]
			}
		case awaySide:
			if away == nil {
				away = &list[i]
			}
		}
	}
	return home, away
}

func leagueInfo(league leagues.League, raw *payload.League) events.LeagueInfo {
	info := events.LeagueInfo{
		ID:            league,
		Name:          league.Name(),
		Abbreviation:  league.Abbreviation(),
		ExternalLinks: []events.Link{},
	}
	if raw != nil {
		info.ExternalLinks = externalLinks(raw.Links)
	}
	return info
}

func status(raw *payload.Status) events.Status {
	if raw == nil {
		return events.NewStatus("", events.StatePre, 0, "")
	}
	desc := raw.Type.Description
	if desc == "" {
		desc = raw.Type.Detail
	}
	return events.NewStatus(desc, parseState(raw.Type.State), raw.Period, raw.DisplayClock)
}

func parseState(raw string) events.State {
	switch events.State(strings.ToLower(strings.TrimSpace(raw))) {
	case events.StateIn:
		return events.StateIn
	case events.StatePost:
		return events.StatePost
	default:
		return events.StatePre
	}
}

func venue(info *payload.GameInfo, fallback *payload.Venue) events.Venue {
	raw := fallback
	if info != nil && info.Venue != nil {
		raw = info.Venue
	}
	if raw == nil {
		return events.Venue{Name: defaultVenueName}
	}
	v := events.Venue{
		ID:       raw.ID,
		Name:     raw.FullName,
		Capacity: raw.Capacity,
		Indoor:   raw.Indoor,
	}
	if v.Name == "" {
		v.Name = defaultVenueName
	}
	if raw.Address != nil {
		v.City = raw.Address.City
		v.Country = raw.Address.Country
	}
	return v
}

func season(raw *payload.Season) events.Season {
	if raw == nil {
		return events.Season{}
	}
	return events.Season{Year: raw.Year, Type: raw.Type, Name: raw.Name}
}

func description(notes []payload.Note) string {
	for _, note := range notes {
		if h := strings.TrimSpace(note.Headline); h != "" {
			return h
		}
	}
	return ""
}

func plays(raw []payload.Play) []events.Play {
	out := make([]events.Play, 0, len(raw))
	for _, p := range raw {
		play := events.Play{
			ID:          p.ID,
			Text:        p.Text,
			Period:      nonNegative(p.Period.Number),
			Clock:       p.Clock.DisplayValue,
			ScoringPlay: p.ScoringPlay,
			HomeScore:   scoreValue(p.HomeScore),
			AwayScore:   scoreValue(p.AwayScore),
		}
		if p.Team != nil {
			play.TeamID = p.Team.ID
		}
		out = append(out, play)
	}
	return out
}

func competitors(raw []payload.Competitor) []events.Competitor {
	out := make([]events.Competitor, 0, len(raw))
	for _, c := range raw {
		out = append(out, events.Competitor{
			ID:       c.ID,
			HomeAway: c.HomeAway,
			Team:     teamRef(c.Team),
			Score:    c.Score.Raw,
		})
	}
	return out
}

func links(raw []payload.Link, tickets []payload.Ticket) events.Links {
	out := events.Links{Tickets: []string{}}
	for _, l := range raw {
		switch {
		case hasRel(l.Rel, "tickets"):
			out.Tickets = append(out.Tickets, l.Href)
		case hasRel(l.Rel, "mobile"):
			if out.Mobile == "" {
				out.Mobile = l.Href
			}
		case out.Web == "" && (hasRel(l.Rel, "desktop") || hasRel(l.Rel, "summary") || len(l.Rel) == 0):
			out.Web = l.Href
		}
	}
	for _, t := range tickets {
		for _, l := range t.Links {
			if l.Href != "" {
				out.Tickets = append(out.Tickets, l.Href)
			}
		}
	}
	return out
}

func hasRel(rels []string, want string) bool {
	for _, r := range rels {
		if strings.EqualFold(r, want) {
			return true
		}
	}
	return false
}

func scoreValue(s payload.Score) int {
	if !s.Valid {
		return 0
	}
	return nonNegative(s.Value)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
