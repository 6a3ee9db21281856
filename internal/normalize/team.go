package normalize

import (
	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

func teamSnapshot(c *payload.Competitor, defaultName string) events.TeamSnapshot {
	snap := events.TeamSnapshot{
		Name:          defaultName,
		Record:        []events.Record{},
		Statistics:    []events.Stat{},
		ExternalLinks: []events.Link{},
	}
	if c == nil {
		return snap
	}
	snap.ID = c.ID
	snap.Score = scoreValue(c.Score)
	snap.ScoreReported = c.Score.Valid
	snap.Record = records(c.Record, c.Records)
	snap.Statistics = stats(c.Statistics)
	if c.Team != nil {
		fillTeam(&snap, c.Team, defaultName)
	}
	return snap
}

// TeamFromPayload builds a scoreless snapshot, as used for roster headers.
func TeamFromPayload(t *payload.Team) events.TeamSnapshot {
	snap := events.TeamSnapshot{
		Record:        []events.Record{},
		Statistics:    []events.Stat{},
		ExternalLinks: []events.Link{},
	}
	if t != nil {
		fillTeam(&snap, t, "")
	}
	return snap
}

func fillTeam(snap *events.TeamSnapshot, t *payload.Team, defaultName string) {
	if t.ID != "" {
		snap.ID = t.ID
	}
	snap.Name = firstNonEmpty(t.DisplayName, t.Name, defaultName)
	snap.Abbreviation = t.Abbreviation
	snap.ShortName = firstNonEmpty(t.ShortDisplayName, t.Name)
	snap.ColorPrimary = t.Color
	snap.ColorAlternate = t.AlternateColor
	snap.LogoURL = t.Logo
	if snap.LogoURL == "" && len(t.Logos) > 0 {
		snap.LogoURL = t.Logos[0].Href
	}
	snap.ExternalLinks = externalLinks(t.Links)
}

func teamRef(t *payload.Team) events.TeamRef {
	if t == nil {
		return events.TeamRef{}
	}
	return events.TeamRef{
		ID:           t.ID,
		Name:         t.Name,
		DisplayName:  t.DisplayName,
		Abbreviation: t.Abbreviation,
	}
}

func records(primary, secondary []payload.Record) []events.Record {
	src := primary
	if len(src) == 0 {
		src = secondary
	}
	out := make([]events.Record, 0, len(src))
	for _, r := range src {
		out = append(out, events.Record{Type: firstNonEmpty(r.Type, r.Name), Summary: r.Summary})
	}
	return out
}

func stats(raw []payload.Statistic) []events.Stat {
	out := make([]events.Stat, 0, len(raw))
	for _, s := range raw {
		out = append(out, events.Stat{
			Name:         s.Name,
			Label:        firstNonEmpty(s.Label, s.Abbreviation),
			DisplayValue: s.DisplayValue,
		})
	}
	return out
}

func externalLinks(raw []payload.Link) []events.Link {
	out := make([]events.Link, 0, len(raw))
	for _, l := range raw {
		if l.Href == "" {
			continue
		}
		out = append(out, events.Link{Text: l.Text, Href: l.Href})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
