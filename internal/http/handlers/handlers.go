// Package handlers serves the scores JSON API and the websocket live feed.
package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	domainevents "github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/rosters"
	"github.com/preston-bernstein/sports-scores-service/internal/http/requestutil"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/livepoll"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/normalize"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
)

// EventService is the read side the handlers depend on.
type EventService interface {
	Event(ctx context.Context, id string) (domainevents.Event, error)
	Score(ctx context.Context, id string) (domainevents.Event, scores.Result, error)
	Scoreboard(ctx context.Context, league leagues.League) (domainevents.Scoreboard, error)
	Aggregate(ctx context.Context, requested []leagues.League) domainevents.AggregateScoreboard
	Roster(ctx context.Context, league leagues.League, teamID string) *rosters.TeamRoster
}

// LiveFeed hands out subscriptions to shared poll loops.
type LiveFeed interface {
	Subscribe(eventID string, fn livepoll.Listener) *livepoll.Subscription
}

// Config wires a Handler. Live and Status are optional.
type Config struct {
	Service EventService
	Live    LiveFeed
	Status  func() poller.Status
	// Leagues is the aggregate scoreboard default when ?leagues= is absent.
	Leagues        []leagues.League
	AllowedOrigins []string
	Logger         *slog.Logger
	// Done closes open live connections when it is closed.
	Done <-chan struct{}
}

// Handler wires HTTP routes to the events service.
type Handler struct {
	svc      EventService
	live     LiveFeed
	statusFn func() poller.Status
	leagues  []leagues.League
	logger   *slog.Logger
	done     <-chan struct{}
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler with defaults.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		svc:      cfg.Service,
		live:     cfg.Live,
		statusFn: cfg.Status,
		leagues:  cfg.Leagues,
		logger:   cfg.Logger,
		done:     cfg.Done,
	}
	if len(h.leagues) == 0 {
		h.leagues = leagues.All()
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

type readyResponse struct {
	Status        string           `json:"status"`
	FailedLeagues []leagues.League `json:"failedLeagues,omitempty"`
}

// Ready reports readiness for traffic once the scoreboard warmer has succeeded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, readyResponse{Status: "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, readyResponse{Status: "ready", FailedLeagues: status.FailedLeagues}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Aggregate returns scoreboards for ?leagues= (or the configured defaults).
// Leagues that fail upstream are listed under "failed".
func (h *Handler) Aggregate(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := requestutil.LeaguesParam(r, h.leagues)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	agg := h.svc.Aggregate(r.Context(), list)
	logging.Info(loggerFromContext(r, h.logger), "served aggregate scoreboard",
		"leagues", len(agg.Leagues),
		"failed", len(agg.Failed),
	)
	writeJSON(w, nethttp.StatusOK, agg, h.logger)
}

// LeagueScoreboard returns one league's scoreboard.
func (h *Handler) LeagueScoreboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	league, err := leagues.Parse(chi.URLParam(r, "league"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	board, err := h.svc.Scoreboard(r.Context(), league)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, board, h.logger)
}

// Event returns one normalized event by composite id.
func (h *Handler) Event(w nethttp.ResponseWriter, r *nethttp.Request) {
	ev, err := h.svc.Event(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, ev, h.logger)
}

type scoreResponse struct {
	EventID string              `json:"eventId"`
	Status  domainevents.Status `json:"status"`
	scores.Result
}

// EventScore returns the resolved score for an event.
func (h *Handler) EventScore(w nethttp.ResponseWriter, r *nethttp.Request) {
	ev, result, err := h.svc.Score(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, scoreResponse{EventID: ev.ID, Status: ev.Status, Result: result}, h.logger)
}

// Roster returns a team roster. Rosters are best effort upstream, so a
// missing one is a 404 rather than a gateway error.
func (h *Handler) Roster(w nethttp.ResponseWriter, r *nethttp.Request) {
	league, err := leagues.Parse(chi.URLParam(r, "league"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	teamID := strings.TrimSpace(chi.URLParam(r, "teamID"))
	if teamID == "" || strings.ContainsAny(teamID, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	roster := h.svc.Roster(r.Context(), league, teamID)
	if roster == nil {
		writeError(w, r, nethttp.StatusNotFound, "roster unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, roster, h.logger)
}

func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	status, msg := classify(err)
	if status >= nethttp.StatusInternalServerError {
		logging.Warn(loggerFromContext(r, h.logger), "request failed", slog.Any(logging.FieldError, err))
	}
	writeError(w, r, status, msg, h.logger)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, leagues.ErrUnsupported):
		return nethttp.StatusBadRequest, "unsupported league"
	case errors.Is(err, domainevents.ErrInvalidID):
		return nethttp.StatusBadRequest, "invalid event id"
	case errors.Is(err, normalize.ErrMalformedPayload):
		return nethttp.StatusNotFound, "event not found"
	default:
		return nethttp.StatusBadGateway, "failed to fetch"
	}
}

func originChecker(allowed []string) func(*nethttp.Request) bool {
	open := len(allowed) == 0
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			open = true
		}
		set[strings.TrimSuffix(o, "/")] = true
	}
	return func(r *nethttp.Request) bool {
		origin := r.Header.Get("Origin")
		return open || origin == "" || set[origin]
	}
}

// NotFound is the JSON 404 for unrouted paths.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 for routed paths with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
