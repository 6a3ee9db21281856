package thesportsdb

import "encoding/json"

type eventsResponse struct {
	Events []event `json:"events"`
}

type event struct {
	IDEvent        string  `json:"idEvent"`
	StrEvent       string  `json:"strEvent"`
	StrEventAlt    string  `json:"strEventAlternate"`
	StrSeason      string  `json:"strSeason"`
	StrLeague      string  `json:"strLeague"`
	IDLeague       string  `json:"idLeague"`
	IDHomeTeam     string  `json:"idHomeTeam"`
	IDAwayTeam     string  `json:"idAwayTeam"`
	StrHomeTeam    string  `json:"strHomeTeam"`
	StrAwayTeam    string  `json:"strAwayTeam"`
	StrHomeBadge   string  `json:"strHomeTeamBadge"`
	StrAwayBadge   string  `json:"strAwayTeamBadge"`
	IntHomeScore   *string `json:"intHomeScore"`
	IntAwayScore   *string `json:"intAwayScore"`
	StrTimestamp   string  `json:"strTimestamp"`
	DateEvent      string  `json:"dateEvent"`
	StrTime        string  `json:"strTime"`
	StrStatus      string  `json:"strStatus"`
	StrProgress    string  `json:"strProgress"`
	StrVenue       string  `json:"strVenue"`
	IDVenue        string  `json:"idVenue"`
	StrCity        string  `json:"strCity"`
	StrCountry     string  `json:"strCountry"`
	StrVideo       string  `json:"strVideo"`
	StrPostponed   string  `json:"strPostponed"`
	StrDescription string  `json:"strDescriptionEN"`
}

type playersResponse struct {
	Player []json.RawMessage `json:"player"`
}

type player struct {
	IDPlayer    string `json:"idPlayer"`
	IDTeam      string `json:"idTeam"`
	StrTeam     string `json:"strTeam"`
	StrPlayer   string `json:"strPlayer"`
	StrPosition string `json:"strPosition"`
	StrNumber   string `json:"strNumber"`
	StrThumb    string `json:"strThumb"`
	StrCutout   string `json:"strCutout"`
	StrHeight   string `json:"strHeight"`
	StrWeight   string `json:"strWeight"`
	DateBorn    string `json:"dateBorn"`
	StrStatus   string `json:"strStatus"`
	StrCollege  string `json:"strCollege"`
}
