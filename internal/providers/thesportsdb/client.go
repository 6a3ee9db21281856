package thesportsdb

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

var errNoPlayers = errors.New("no players listed for team")

// Config controls how the TheSportsDB client reaches the v1 JSON API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client is the secondary provider. Its responses are mapped into the
// shared payload shape so the normalizer does not care which provider ran.
type Client struct {
	baseURL    string
	httpClient providers.HTTPDoer
	now        func() time.Time
}

var _ providers.Provider = (*Client)(nil)

// NewClient constructs a TheSportsDB client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	key := cfg.APIKey
	if key == "" {
		key = defaultAPIKey
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/") + "/" + url.PathEscape(key),
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// Name implements providers.Provider.
func (c *Client) Name() string { return ProviderName }

// FetchScoreboard lists today's events (UTC) for the league.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	day := timeutil.FormatDate(c.now())
	q := url.Values{"d": []string{day}, "l": []string{league.SportsDBID()}}

	var resp eventsResponse
	if err := c.get(ctx, "eventsday.php", q, &resp); err != nil {
		return nil, err
	}
	board := &payload.Scoreboard{Day: &payload.Day{Date: day}, Events: make([]payload.ScoreboardEvent, 0, len(resp.Events))}
	for _, ev := range resp.Events {
		if ev.IDLeague != "" && ev.IDLeague != league.SportsDBID() {
			continue
		}
		board.Events = append(board.Events, mapEvent(ev))
	}
	return board, nil
}

// FetchEventSummary looks up a single event. An unknown id, or an event from
// another league, yields a summary without a header, which the normalizer
// reports as not found.
func (c *Client) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	var resp eventsResponse
	if err := c.get(ctx, "lookupevent.php", url.Values{"id": []string{providerEventID}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Events) == 0 || resp.Events[0].IDLeague != league.SportsDBID() {
		return &payload.Summary{}, nil
	}
	return mapSummary(resp.Events[0]), nil
}

// FetchTeamRoster lists a team's players grouped by position.
func (c *Client) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	var resp playersResponse
	if err := c.get(ctx, "lookup_all_players.php", url.Values{"id": []string{teamID}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Player) == 0 {
		return nil, &providers.UpstreamError{Provider: ProviderName, Err: errNoPlayers}
	}
	roster, err := mapRoster(teamID, resp.Player, c.now())
	if err != nil {
		return nil, &providers.UpstreamError{Provider: ProviderName, Err: err}
	}
	return roster, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + "/" + path + "?" + q.Encode()
	return providers.GetJSON(ctx, c.httpClient, ProviderName, endpoint, nil, out)
}
