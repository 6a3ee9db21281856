package events

import (
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
)

// ErrInvalidID is returned when a composite id cannot be split.
var ErrInvalidID = errors.New("invalid event id")

// ComposeID builds the public identifier "{league}_{providerEventId}".
func ComposeID(league leagues.League, providerEventID string) string {
	return string(league) + "_" + providerEventID
}

// ParseID splits a composite id. Unknown leagues surface leagues.ErrUnsupported.
func ParseID(id string) (leagues.League, string, error) {
	prefix, providerID, ok := strings.Cut(strings.TrimSpace(id), "_")
	if !ok || prefix == "" || providerID == "" || strings.ContainsAny(providerID, " /\t") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	league, err := leagues.Parse(prefix)
	if err != nil {
		return "", "", err
	}
	return league, providerID, nil
}
