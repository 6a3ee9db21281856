package thesportsdb

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// mapEvent converts a TheSportsDB event into the shared scoreboard shape.
func mapEvent(ev event) payload.ScoreboardEvent {
	status := mapStatus(ev.StrStatus, ev.StrProgress, ev.StrPostponed)
	date := eventDate(ev)
	comp := payload.Competition{
		ID:   ev.IDEvent,
		Date: date,
		Competitors: []payload.Competitor{
			mapCompetitor("home", ev.IDHomeTeam, ev.StrHomeTeam, ev.StrHomeBadge, ev.IntHomeScore),
			mapCompetitor("away", ev.IDAwayTeam, ev.StrAwayTeam, ev.StrAwayBadge, ev.IntAwayScore),
		},
		Status: &status,
	}
	if ev.StrVenue != "" {
		comp.Venue = &payload.Venue{
			ID:       ev.IDVenue,
			FullName: ev.StrVenue,
			Address:  &payload.Address{City: ev.StrCity, Country: ev.StrCountry},
		}
	}

	out := payload.ScoreboardEvent{
		ID:           ev.IDEvent,
		Date:         date,
		Name:         ev.StrEvent,
		ShortName:    ev.StrEventAlt,
		Competitions: []payload.Competition{comp},
	}
	if season := mapSeason(ev.StrSeason); season != nil {
		out.Season = season
	}
	if ev.StrVideo != "" {
		out.Links = []payload.Link{{Rel: []string{"highlights"}, Text: "Highlights", Href: ev.StrVideo}}
	}
	return out
}

// mapSummary lifts an event into a summary. TheSportsDB has no boxscore,
// play-by-play or news on the free tier.
func mapSummary(ev event) *payload.Summary {
	summary := mapEvent(ev).AsSummary()
	summary.Header.League = &payload.League{ID: ev.IDLeague, Name: ev.StrLeague}
	return summary
}

func mapCompetitor(homeAway, id, name, badge string, score *string) payload.Competitor {
	c := payload.Competitor{
		ID:       id,
		HomeAway: homeAway,
		Team: &payload.Team{
			ID:          id,
			Name:        name,
			DisplayName: name,
			Logo:        badge,
		},
	}
	if score != nil {
		c.Score = payload.ParseScore(*score)
	}
	return c
}

var (
	finalStatuses = map[string]bool{
		"match finished": true, "ft": true, "aet": true, "pen": true, "aot": true,
		"finished": true, "final": true, "after over time": true, "cancelled": true,
		"abandoned": true, "postponed": true,
	}
	liveStatuses = map[string]bool{
		"in progress": true, "ht": true, "1h": true, "2h": true, "et": true, "p": true,
		"q1": true, "q2": true, "q3": true, "q4": true, "ot": true, "bt": true,
		"p1": true, "p2": true, "p3": true, "live": true,
	}
)

func mapStatus(raw, progress, postponed string) payload.Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	desc := strings.TrimSpace(raw)
	st := payload.StatusType{State: "pre", Description: "Scheduled"}
	switch {
	case strings.EqualFold(postponed, "yes"):
		st = payload.StatusType{State: "post", Completed: false, Description: "Postponed"}
	case finalStatuses[key]:
		st = payload.StatusType{State: "post", Completed: key != "cancelled" && key != "abandoned" && key != "postponed", Description: finalDescription(key, desc)}
	case liveStatuses[key]:
		st = payload.StatusType{State: "in", Description: "In Progress", Detail: desc}
	}
	return payload.Status{Period: periodFrom(key), DisplayClock: strings.TrimSpace(progress), Type: st}
}

func finalDescription(key, desc string) string {
	switch key {
	case "cancelled", "abandoned", "postponed":
		return desc
	default:
		return "Final"
	}
}

func periodFrom(key string) int {
	switch key {
	case "1h", "q1", "p1":
		return 1
	case "ht", "2h", "q2", "p2":
		return 2
	case "q3", "p3":
		return 3
	case "q4":
		return 4
	}
	return 0
}

func eventDate(ev event) string {
	if ev.StrTimestamp != "" {
		return timeutil.NormalizeTimestamp(ev.StrTimestamp)
	}
	if ev.DateEvent == "" {
		return ""
	}
	clock := ev.StrTime
	if clock == "" {
		clock = "00:00:00"
	}
	return timeutil.NormalizeTimestamp(ev.DateEvent + "T" + clock)
}

func mapSeason(raw string) *payload.Season {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(strings.SplitN(raw, "-", 2)[0])
	if err != nil {
		return &payload.Season{Name: raw}
	}
	return &payload.Season{Year: year, Name: raw}
}

// mapRoster groups players by position in first-seen order.
func mapRoster(teamID string, raws []json.RawMessage, now time.Time) (*payload.Roster, error) {
	roster := &payload.Roster{Team: &payload.Team{ID: teamID}}
	index := map[string]int{}
	for _, raw := range raws {
		var p player
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		var rawMap map[string]any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&rawMap); err != nil {
			return nil, err
		}
		if roster.Team.DisplayName == "" {
			roster.Team.DisplayName = p.StrTeam
			roster.Team.Name = p.StrTeam
		}

		position := strings.TrimSpace(p.StrPosition)
		i, ok := index[position]
		if !ok {
			i = len(roster.Athletes)
			index[position] = i
			roster.Athletes = append(roster.Athletes, payload.AthleteGroup{Position: position})
		}
		roster.Athletes[i].Items = append(roster.Athletes[i].Items, mapAthlete(p, rawMap, now))
	}
	return roster, nil
}

func mapAthlete(p player, raw map[string]any, now time.Time) payload.Athlete {
	a := payload.Athlete{
		ID:            payload.FlexString(p.IDPlayer),
		DisplayName:   p.StrPlayer,
		FullName:      p.StrPlayer,
		Jersey:        p.StrNumber,
		DisplayHeight: p.StrHeight,
		DisplayWeight: p.StrWeight,
		Age:           ageOn(p.DateBorn, now),
		Raw:           raw,
	}
	if p.StrPosition != "" {
		a.Position = &payload.Position{Name: p.StrPosition, Abbreviation: p.StrPosition}
	}
	headshot := p.StrCutout
	if headshot == "" {
		headshot = p.StrThumb
	}
	if headshot != "" {
		a.Headshot = &payload.Logo{Href: headshot}
	}
	if p.StrStatus != "" {
		a.Status = &payload.AthleteStatus{Name: p.StrStatus}
	}
	if p.StrCollege != "" {
		a.College = &payload.College{Name: p.StrCollege}
	}
	return a
}

func ageOn(born string, now time.Time) int {
	b, err := timeutil.ParseDate(born)
	if err != nil {
		return 0
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
