package payload

import (
	"bytes"
	"encoding/json"
)

// Roster is a team roster response.
type Roster struct {
	Team     *Team          `json:"team,omitempty"`
	Coach    []Coach        `json:"coach,omitempty"`
	Athletes []AthleteGroup `json:"athletes"`
}

// Coach is a roster coach entry.
type Coach struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Experience int    `json:"experience"`
}

// AthleteGroup is a provider position group. ESPN groups football rosters
// ({"position": "offense", "items": [...]}) but returns a flat athlete list
// for other sports; a flat list decodes into one group with an empty position.
type AthleteGroup struct {
	Position string    `json:"position"`
	Items    []Athlete `json:"items"`
}

// UnmarshalJSON handles both the grouped and the flat roster layouts.
func (r *Roster) UnmarshalJSON(b []byte) error {
	var aux struct {
		Team     *Team             `json:"team,omitempty"`
		Coach    []Coach           `json:"coach,omitempty"`
		Athletes []json.RawMessage `json:"athletes"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.Team = aux.Team
	r.Coach = aux.Coach
	r.Athletes = nil

	var flat []Athlete
	for _, raw := range aux.Athletes {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return err
		}
		if _, grouped := probe["items"]; grouped {
			var g AthleteGroup
			if err := json.Unmarshal(raw, &g); err != nil {
				return err
			}
			r.Athletes = append(r.Athletes, g)
			continue
		}
		var a Athlete
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		flat = append(flat, a)
	}
	if len(flat) > 0 {
		r.Athletes = append(r.Athletes, AthleteGroup{Items: flat})
	}
	return nil
}

// Athlete is a roster athlete. Raw holds the full provider object.
type Athlete struct {
	ID            FlexString     `json:"id"`
	DisplayName   string         `json:"displayName"`
	FullName      string         `json:"fullName,omitempty"`
	Jersey        string         `json:"jersey,omitempty"`
	Position      *Position      `json:"position,omitempty"`
	Headshot      *Logo          `json:"headshot,omitempty"`
	DisplayHeight string         `json:"displayHeight,omitempty"`
	DisplayWeight string         `json:"displayWeight,omitempty"`
	Age           int            `json:"age,omitempty"`
	Status        *AthleteStatus `json:"status,omitempty"`
	College       *College       `json:"college,omitempty"`
	Experience    *Experience    `json:"experience,omitempty"`
	Raw           map[string]any `json:"-"`
}

// AthleteStatus is the active/injured status.
type AthleteStatus struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// College is where an athlete played.
type College struct {
	Name string `json:"name"`
}

// Experience is years of service.
type Experience struct {
	Years int `json:"years"`
}

type athleteAlias Athlete

// UnmarshalJSON decodes the typed fields and keeps the raw object.
func (a *Athlete) UnmarshalJSON(b []byte) error {
	var typed athleteAlias
	if err := json.Unmarshal(b, &typed); err != nil {
		return err
	}
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*a = Athlete(typed)
	a.Raw = raw
	return nil
}
