package rosters

import "github.com/preston-bernstein/sports-scores-service/internal/domain/events"

// Experience is a player's or coach's tenure.
type Experience struct {
	Years int `json:"years"`
}

// Player is the canonical roster entry. RawData carries the provider-native
// object for long-tail attributes (draft, contract, social links).
type Player struct {
	ID            string         `json:"id"`
	DisplayName   string         `json:"displayName"`
	Position      string         `json:"position"`
	Jersey        string         `json:"jersey"`
	Headshot      string         `json:"headshot"`
	DisplayHeight string         `json:"displayHeight"`
	DisplayWeight string         `json:"displayWeight"`
	Age           int            `json:"age"`
	Status        string         `json:"status"`
	College       string         `json:"college"`
	Experience    Experience     `json:"experience"`
	RawData       map[string]any `json:"rawData,omitempty"`
}

// Coach is a team coach.
type Coach struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Experience int    `json:"experience"`
}

// AthleteGroup is a provider-defined position group.
type AthleteGroup struct {
	Position string   `json:"position"`
	Players  []Player `json:"players"`
}

// TeamRoster is one team's roster for a single fetch.
type TeamRoster struct {
	Team     events.TeamSnapshot `json:"team"`
	Coaches  []Coach             `json:"coaches"`
	Athletes []AthleteGroup      `json:"athletes"`
}

// PlayerCount returns the number of players across all groups.
func (r *TeamRoster) PlayerCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, g := range r.Athletes {
		n += len(g.Players)
	}
	return n
}

// FindPlayer looks a player up by id across groups.
func (r *TeamRoster) FindPlayer(id string) (Player, bool) {
	if r == nil {
		return Player{}, false
	}
	for _, g := range r.Athletes {
		for _, p := range g.Players {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Player{}, false
}
