package espn

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// Config controls how the ESPN client reaches the site API.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches scoreboards, summaries and rosters from ESPN's public site API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient providers.HTTPDoer
}

var _ providers.Provider = (*Client)(nil)

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  ua,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Name implements providers.Provider.
func (c *Client) Name() string { return ProviderName }

// FetchScoreboard retrieves ESPN's current scoreboard for a league.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	var out payload.Scoreboard
	if err := c.get(ctx, c.endpoint(league, "scoreboard", nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchEventSummary retrieves the full summary for one event.
func (c *Client) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	q := url.Values{"event": []string{providerEventID}}
	var out payload.Summary
	if err := c.get(ctx, c.endpoint(league, "summary", q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTeamRoster retrieves a team roster.
func (c *Client) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	if err := providers.CheckLeague(league); err != nil {
		return nil, err
	}
	var out payload.Roster
	path := "teams/" + url.PathEscape(teamID) + "/roster"
	if err := c.get(ctx, c.endpoint(league, path, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) endpoint(league leagues.League, path string, q url.Values) string {
	u := c.baseURL + "/" + league.SportPath() + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	return providers.GetJSON(ctx, c.httpClient, ProviderName, endpoint, header, out)
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
