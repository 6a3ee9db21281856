package normalize

import (
	"github.com/preston-bernstein/sports-scores-service/internal/domain/rosters"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// Roster maps a roster payload. Position groups are kept exactly as the
// provider sent them.
func (n *Normalizer) Roster(raw *payload.Roster) *rosters.TeamRoster {
	if raw == nil {
		return nil
	}
	out := &rosters.TeamRoster{
		Team:     TeamFromPayload(raw.Team),
		Coaches:  make([]rosters.Coach, 0, len(raw.Coach)),
		Athletes: make([]rosters.AthleteGroup, 0, len(raw.Athletes)),
	}
	for _, c := range raw.Coach {
		out.Coaches = append(out.Coaches, rosters.Coach{
			ID:         c.ID,
			FirstName:  c.FirstName,
			LastName:   c.LastName,
			Experience: c.Experience,
		})
	}
	for _, g := range raw.Athletes {
		group := rosters.AthleteGroup{Position: g.Position, Players: make([]rosters.Player, 0, len(g.Items))}
		for _, a := range g.Items {
			group.Players = append(group.Players, player(a))
		}
		out.Athletes = append(out.Athletes, group)
	}
	return out
}

func player(a payload.Athlete) rosters.Player {
	p := rosters.Player{
		ID:            a.ID.String(),
		DisplayName:   firstNonEmpty(a.DisplayName, a.FullName),
		Jersey:        a.Jersey,
		DisplayHeight: a.DisplayHeight,
		DisplayWeight: a.DisplayWeight,
		Age:           nonNegative(a.Age),
		RawData:       a.Raw,
	}
	if a.Position != nil {
		p.Position = firstNonEmpty(a.Position.Abbreviation, a.Position.Name)
	}
	if a.Headshot != nil {
		p.Headshot = a.Headshot.Href
	}
	if a.Status != nil {
		p.Status = firstNonEmpty(a.Status.Name, a.Status.Type)
	}
	if a.College != nil {
		p.College = a.College.Name
	}
	if a.Experience != nil {
		p.Experience.Years = a.Experience.Years
	}
	return p
}
