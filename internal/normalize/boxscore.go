package normalize

import (
	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

func boxscore(raw *payload.Boxscore) events.Boxscore {
	out := events.Boxscore{Teams: []events.TeamBoxscore{}, Players: []events.PlayerBoxscore{}}
	if raw == nil {
		return out
	}
	for _, t := range raw.Teams {
		entry := events.TeamBoxscore{
			Team:       teamRef(t.Team),
			HomeAway:   t.HomeAway,
			Statistics: stats(t.Statistics),
		}
		if t.Score.Valid {
			v := nonNegative(t.Score.Value)
			entry.Score = &v
		}
		out.Teams = append(out.Teams, entry)
	}
	for _, p := range raw.Players {
		for _, category := range p.Statistics {
			group := events.PlayerBoxscore{
				Team:     teamRef(p.Team),
				Category: category.Name,
				Labels:   append([]string{}, category.Labels...),
				Athletes: make([]events.PlayerLine, 0, len(category.Athletes)),
			}
			for _, a := range category.Athletes {
				line := events.PlayerLine{
					AthleteID:   a.Athlete.ID,
					DisplayName: a.Athlete.DisplayName,
					Jersey:      a.Athlete.Jersey,
					Starter:     a.Starter,
					DidNotPlay:  a.DidNotPlay,
					Stats:       append([]string{}, a.Stats...),
				}
				if a.Athlete.Position != nil {
					line.Position = a.Athlete.Position.Abbreviation
				}
				group.Athletes = append(group.Athletes, line)
			}
			out.Players = append(out.Players, group)
		}
	}
	return out
}
