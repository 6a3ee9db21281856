package events

import "github.com/preston-bernstein/sports-scores-service/internal/leagues"

// MaxDisplayedPlays caps play-by-play for display.
const MaxDisplayedPlays = 200

// State is the provider lifecycle state of an event.
type State string

const (
	StatePre  State = "pre"
	StateIn   State = "in"
	StatePost State = "post"
)

// Lifecycle buckets an event for cache TTL and polling decisions.
type Lifecycle string

const (
	LifecycleScheduled Lifecycle = "scheduled"
	LifecycleLive      Lifecycle = "live"
	LifecycleFinal     Lifecycle = "final"
)

// Link is an external link attached to a league, team or event.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// LeagueInfo describes the league an event belongs to.
type LeagueInfo struct {
	ID            leagues.League `json:"id"`
	Name          string         `json:"name"`
	Abbreviation  string         `json:"abbreviation"`
	ExternalLinks []Link         `json:"externalLinks"`
}

// Record is a team's win/loss summary, e.g. {"overall", "41-12"}.
type Record struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Stat is a single labelled statistic.
type Stat struct {
	Name         string `json:"name"`
	Label        string `json:"label,omitempty"`
	DisplayValue string `json:"displayValue"`
}

// TeamSnapshot is a team as it appears in one event.
type TeamSnapshot struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	ShortName      string `json:"shortName"`
	ColorPrimary   string `json:"colorPrimary"`
	ColorAlternate string `json:"colorAlternate"`
	LogoURL        string `json:"logoUrl"`
	// Score is always >= 0. ScoreReported is false when the provider omitted
	// the score or sent something unparseable.
	Score         int      `json:"score"`
	ScoreReported bool     `json:"scoreReported"`
	Record        []Record `json:"record"`
	Statistics    []Stat   `json:"statistics"`
	ExternalLinks []Link   `json:"externalLinks"`
}

// Status is the current game state.
type Status struct {
	Description  string `json:"description"`
	State        State  `json:"state"`
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
	IsLive       bool   `json:"isLive"`
}

// NewStatus builds a Status and derives IsLive from the state.
func NewStatus(description string, state State, period int, clock string) Status {
	if period < 0 {
		period = 0
	}
	return Status{
		Description:  description,
		State:        state,
		Period:       period,
		DisplayClock: clock,
		IsLive:       state == StateIn,
	}
}

// Lifecycle maps the provider state to a cache/poll bucket.
func (s Status) Lifecycle() Lifecycle {
	switch s.State {
	case StateIn:
		return LifecycleLive
	case StatePost:
		return LifecycleFinal
	default:
		return LifecycleScheduled
	}
}

// Venue is where the event is played.
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Capacity *int   `json:"capacity"`
	Indoor   bool   `json:"indoor"`
}

// Season is provider defined and may be empty.
type Season struct {
	Year int    `json:"year,omitempty"`
	Type int    `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// TeamRef is the minimal identity used to match teams across payload sections.
type TeamRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

// TeamBoxscore is one team's entry in the boxscore.
type TeamBoxscore struct {
	Team       TeamRef `json:"team"`
	HomeAway   string  `json:"homeAway,omitempty"`
	Score      *int    `json:"score,omitempty"`
	Statistics []Stat  `json:"statistics"`
}

// PlayerLine is one athlete's stat line inside a boxscore group.
type PlayerLine struct {
	AthleteID   string   `json:"athleteId"`
	DisplayName string   `json:"displayName"`
	Position    string   `json:"position,omitempty"`
	Jersey      string   `json:"jersey,omitempty"`
	Starter     bool     `json:"starter"`
	DidNotPlay  bool     `json:"didNotPlay"`
	Stats       []string `json:"stats"`
}

// PlayerBoxscore groups player stat lines for one team and category.
type PlayerBoxscore struct {
	Team     TeamRef      `json:"team"`
	Category string       `json:"category"`
	Labels   []string     `json:"labels"`
	Athletes []PlayerLine `json:"athletes"`
}

// Boxscore holds per-team and per-player stats.
type Boxscore struct {
	Teams   []TeamBoxscore   `json:"teams"`
	Players []PlayerBoxscore `json:"players"`
}

// Play is one play-by-play entry.
type Play struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Period      int    `json:"period"`
	Clock       string `json:"clock"`
	ScoringPlay bool   `json:"scoringPlay"`
	HomeScore   int    `json:"homeScore"`
	AwayScore   int    `json:"awayScore"`
	TeamID      string `json:"teamId,omitempty"`
}

// NewsItem is a headline attached to an event.
type NewsItem struct {
	ID          string `json:"id"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Link        string `json:"link"`
	ImageURL    string `json:"imageUrl"`
}

// Competitor is the raw competitor entry kept for score resolution.
type Competitor struct {
	ID       string  `json:"id"`
	HomeAway string  `json:"homeAway"`
	Team     TeamRef `json:"team"`
	Score    string  `json:"score"`
}

// Links are the event's outbound links.
type Links struct {
	Web     string   `json:"web"`
	Mobile  string   `json:"mobile"`
	Tickets []string `json:"tickets"`
}

// Event is one scheduled, live or finished contest. It is not mutated after
// construction.
type Event struct {
	ID          string       `json:"id"`
	League      LeagueInfo   `json:"league"`
	HomeTeam    TeamSnapshot `json:"homeTeam"`
	AwayTeam    TeamSnapshot `json:"awayTeam"`
	Status      Status       `json:"status"`
	ScheduledAt string       `json:"scheduledAt"`
	Venue       Venue        `json:"venue"`
	Season      Season       `json:"season"`
	Description string       `json:"description,omitempty"`
	Boxscore    Boxscore     `json:"boxscore"`
	PlayByPlay  []Play       `json:"playByPlay"`
	News        []NewsItem   `json:"news"`
	Competitors []Competitor `json:"competitors"`
	Links       Links        `json:"links"`
}

// DisplayPlays returns at most MaxDisplayedPlays of the play-by-play.
func (e Event) DisplayPlays() []Play {
	if len(e.PlayByPlay) <= MaxDisplayedPlays {
		return e.PlayByPlay
	}
	return e.PlayByPlay[:MaxDisplayedPlays]
}

// Scoreboard is one league's list of events.
type Scoreboard struct {
	League leagues.League `json:"league"`
	Day    string         `json:"day,omitempty"`
	Events []Event        `json:"events"`
}

// Placeholder names given to teams the provider did not name.
const (
	DefaultHomeTeamName = "Home"
	DefaultAwayTeamName = "Away"
)

// AggregateScoreboard is the all-settled result of fetching several leagues.
type AggregateScoreboard struct {
	Leagues []Scoreboard              `json:"leagues"`
	Failed  map[leagues.League]string `json:"failed,omitempty"`
}
