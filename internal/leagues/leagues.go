package leagues

import (
	"errors"
	"fmt"
	"strings"
)

// League identifies one of the supported leagues.
type League string

const (
	NBA League = "nba"
	NFL League = "nfl"
	MLB League = "mlb"
	NHL League = "nhl"
	MLS League = "mls"
)

// ErrUnsupported is returned for any league outside the fixed set.
var ErrUnsupported = errors.New("unsupported league")

type info struct {
	sportPath    string
	name         string
	abbreviation string
	sportsDBID   string
}

var registry = map[League]info{
	NBA: {sportPath: "basketball/nba", name: "National Basketball Association", abbreviation: "NBA", sportsDBID: "4387"},
	NFL: {sportPath: "football/nfl", name: "National Football League", abbreviation: "NFL", sportsDBID: "4391"},
	MLB: {sportPath: "baseball/mlb", name: "Major League Baseball", abbreviation: "MLB", sportsDBID: "4424"},
	NHL: {sportPath: "hockey/nhl", name: "National Hockey League", abbreviation: "NHL", sportsDBID: "4380"},
	MLS: {sportPath: "soccer/usa.1", name: "Major League Soccer", abbreviation: "MLS", sportsDBID: "4346"},
}

var ordered = []League{NBA, NFL, MLB, NHL, MLS}

// All returns every supported league in display order.
func All() []League {
	out := make([]League, len(ordered))
	copy(out, ordered)
	return out
}

// Parse resolves a caller-provided league string.
func Parse(raw string) (League, error) {
	l := League(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := registry[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
	return l, nil
}

// ParseList parses a comma separated list, skipping blanks. Any unsupported
// entry fails the whole list.
func ParseList(raw string) ([]League, error) {
	var out []League
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Valid reports whether l is in the supported set.
func (l League) Valid() bool {
	_, ok := registry[l]
	return ok
}

// SportPath is the provider sub-path, e.g. "basketball/nba".
func (l League) SportPath() string { return registry[l].sportPath }

// Name is the league's display name.
func (l League) Name() string { return registry[l].name }

// Abbreviation is the upper-case short form, e.g. "NBA".
func (l League) Abbreviation() string { return registry[l].abbreviation }

// SportsDBID is the league id used by the secondary provider.
func (l League) SportsDBID() string { return registry[l].sportsDBID }

func (l League) String() string { return string(l) }
