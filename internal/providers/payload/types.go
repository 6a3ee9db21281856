// Package payload holds the raw wire shape produced by every provider. It
// mirrors ESPN's site API, which the secondary provider maps into.
package payload

import "encoding/json"

// Scoreboard is a league scoreboard response.
type Scoreboard struct {
	Day    *Day              `json:"day,omitempty"`
	Events []ScoreboardEvent `json:"events"`
}

// Day is the scoreboard's calendar day.
type Day struct {
	Date string `json:"date"`
}

// ScoreboardEvent is one event entry on a scoreboard.
type ScoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Season       *Season       `json:"season,omitempty"`
	Competitions []Competition `json:"competitions"`
	Links        []Link        `json:"links,omitempty"`
}

// AsSummary lifts a scoreboard entry into the summary shape so both go
// through the same normalizer.
func (e ScoreboardEvent) AsSummary() *Summary {
	var venue *Venue
	if len(e.Competitions) > 0 {
		venue = e.Competitions[0].Venue
	}
	return &Summary{
		Header: &Header{
			ID:           e.ID,
			Name:         e.Name,
			Season:       e.Season,
			Competitions: e.Competitions,
			Links:        e.Links,
		},
		GameInfo: &GameInfo{Venue: venue},
	}
}

// Summary is an event summary response.
type Summary struct {
	Header   *Header   `json:"header"`
	Boxscore *Boxscore `json:"boxscore,omitempty"`
	GameInfo *GameInfo `json:"gameInfo,omitempty"`
	Plays    []Play    `json:"plays,omitempty"`
	// News arrives either as a bare array or as {"articles": [...]}.
	News    json.RawMessage `json:"news,omitempty"`
	Tickets []Ticket        `json:"tickets,omitempty"`
}

// Header carries the event identity and competitions.
type Header struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Season       *Season       `json:"season,omitempty"`
	League       *League       `json:"league,omitempty"`
	Competitions []Competition `json:"competitions"`
	Links        []Link        `json:"links,omitempty"`
}

// League is the provider's league descriptor.
type League struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Links        []Link `json:"links,omitempty"`
}

// Season is provider defined.
type Season struct {
	Year int    `json:"year"`
	Type int    `json:"type"`
	Name string `json:"name,omitempty"`
}

// Link is a provider link; Rel is set by ESPN on event links.
type Link struct {
	Rel  []string `json:"rel,omitempty"`
	Text string   `json:"text,omitempty"`
	Href string   `json:"href"`
}

// Competition is a single contest within an event.
type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []Competitor `json:"competitors"`
	Status      *Status      `json:"status,omitempty"`
	Venue       *Venue       `json:"venue,omitempty"`
	Notes       []Note       `json:"notes,omitempty"`
}

// Note is a free-text annotation, e.g. "East Finals - Game 3".
type Note struct {
	Headline string `json:"headline"`
}

// Competitor is a team entry in a competition.
type Competitor struct {
	ID         string      `json:"id"`
	HomeAway   string      `json:"homeAway"`
	Score      Score       `json:"score"`
	Team       *Team       `json:"team,omitempty"`
	Record     []Record    `json:"record,omitempty"`
	Records    []Record    `json:"records,omitempty"`
	Statistics []Statistic `json:"statistics,omitempty"`
}

// Team is the provider team descriptor.
type Team struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Location         string `json:"location,omitempty"`
	Color            string `json:"color"`
	AlternateColor   string `json:"alternateColor"`
	Logo             string `json:"logo,omitempty"`
	Logos            []Logo `json:"logos,omitempty"`
	Links            []Link `json:"links,omitempty"`
}

// Logo is one logo rendition.
type Logo struct {
	Href string `json:"href"`
}

// Record is a win/loss summary.
type Record struct {
	Name    string `json:"name,omitempty"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Statistic is a labelled stat value.
type Statistic struct {
	Name         string `json:"name"`
	Label        string `json:"label,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	DisplayValue string `json:"displayValue"`
}

// Status is the competition status.
type Status struct {
	Period       int        `json:"period"`
	DisplayClock string     `json:"displayClock"`
	Type         StatusType `json:"type"`
}

// StatusType is the lifecycle detail of a status.
type StatusType struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail,omitempty"`
	ShortDetail string `json:"shortDetail,omitempty"`
}

// GameInfo carries venue details in summary payloads.
type GameInfo struct {
	Venue *Venue `json:"venue,omitempty"`
}

// Venue is the provider venue descriptor.
type Venue struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Address  *Address `json:"address,omitempty"`
	Capacity *int     `json:"capacity,omitempty"`
	Indoor   bool     `json:"indoor"`
}

// Address is a venue address.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// Boxscore is the summary boxscore section.
type Boxscore struct {
	Teams   []BoxscoreTeam   `json:"teams,omitempty"`
	Players []BoxscorePlayer `json:"players,omitempty"`
}

// BoxscoreTeam is a team entry in the boxscore. Score is rarely populated
// by ESPN but other providers fill it.
type BoxscoreTeam struct {
	Team       *Team       `json:"team,omitempty"`
	HomeAway   string      `json:"homeAway,omitempty"`
	Score      Score       `json:"score"`
	Statistics []Statistic `json:"statistics,omitempty"`
}

// BoxscorePlayer groups player stat categories for a team.
type BoxscorePlayer struct {
	Team       *Team                `json:"team,omitempty"`
	Statistics []BoxscoreStatistics `json:"statistics,omitempty"`
}

// BoxscoreStatistics is one stat category with its athletes.
type BoxscoreStatistics struct {
	Name     string            `json:"name,omitempty"`
	Labels   []string          `json:"labels,omitempty"`
	Athletes []BoxscoreAthlete `json:"athletes,omitempty"`
}

// BoxscoreAthlete is one athlete's line.
type BoxscoreAthlete struct {
	Athlete struct {
		ID          string    `json:"id"`
		DisplayName string    `json:"displayName"`
		Jersey      string    `json:"jersey,omitempty"`
		Position    *Position `json:"position,omitempty"`
	} `json:"athlete"`
	Starter    bool     `json:"starter"`
	DidNotPlay bool     `json:"didNotPlay"`
	Stats      []string `json:"stats"`
}

// Position is an athlete's position.
type Position struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Play is one play-by-play entry.
type Play struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ScoringPlay bool   `json:"scoringPlay"`
	HomeScore   Score  `json:"homeScore"`
	AwayScore   Score  `json:"awayScore"`
	Period      struct {
		Number int `json:"number"`
	} `json:"period"`
	Clock struct {
		DisplayValue string `json:"displayValue"`
	} `json:"clock"`
	Team *struct {
		ID string `json:"id"`
	} `json:"team,omitempty"`
}

// Article is a news article.
type Article struct {
	ID          FlexString  `json:"id,omitempty"`
	Headline    string      `json:"headline"`
	Description string      `json:"description"`
	Published   string      `json:"published"`
	Links       struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
	Images []Logo `json:"images,omitempty"`
}

// Ticket is a ticket listing with purchase links.
type Ticket struct {
	Summary string `json:"summary,omitempty"`
	Links   []Link `json:"links,omitempty"`
}
