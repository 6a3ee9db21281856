package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	domainevents "github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/livepoll"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16

	refreshCommand = "refresh"
)

// liveFrame is one websocket message on the live feed.
type liveFrame struct {
	EventID    string              `json:"eventId"`
	Event      *domainevents.Event `json:"event,omitempty"`
	Score      *scores.Result      `json:"score,omitempty"`
	Changed    bool                `json:"changed"`
	Forced     bool                `json:"forced"`
	HomeScored bool                `json:"homeScored"`
	AwayScored bool                `json:"awayScored"`
	Stale      bool                `json:"stale"`
	Error      string              `json:"error,omitempty"`
}

func frameFrom(u livepoll.Update) liveFrame {
	f := liveFrame{
		EventID:    u.EventID,
		Event:      u.Event,
		Changed:    u.Changed,
		Forced:     u.Forced,
		HomeScored: u.HomeScored,
		AwayScored: u.AwayScored,
		Stale:      u.Stale,
	}
	if u.Event != nil {
		score := u.Score
		f.Score = &score
	}
	if u.Err != nil {
		f.Error = "failed to fetch"
	}
	return f
}

// Live upgrades to a websocket and streams updates from the event's shared
// poll loop. A text "refresh" message forces an immediate fetch.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "eventID")
	if _, _, err := domainevents.ParseID(id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if h.live == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "live feed unavailable", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", slog.Any(logging.FieldError, err))
		return
	}

	send := make(chan liveFrame, sendBufferSize)
	sub := h.live.Subscribe(id, func(u livepoll.Update) {
		select {
		case send <- frameFrom(u):
		default:
			logging.Warn(logger, "live frame dropped", slog.String(logging.FieldEventID, id))
		}
	})
	logger = logger.With(slog.String("subscription_id", sub.ID))
	logging.Info(logger, "live feed connected", slog.String(logging.FieldEventID, id))

	closed := make(chan struct{})
	go h.writePump(conn, send, closed, logger)
	readPump(conn, sub, logger)

	close(closed)
	sub.Close()
	logging.Info(logger, "live feed disconnected", slog.String(logging.FieldEventID, id))
}

func readPump(conn *websocket.Conn, sub *livepoll.Subscription, logger *slog.Logger) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug(logger, "live feed closed unexpectedly", slog.Any(logging.FieldError, err))
			}
			return
		}
		if kind == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(msg)), refreshCommand) {
			sub.Refresh()
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, send <-chan liveFrame, closed <-chan struct{}, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-closed:
			return
		case <-h.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			return
		case frame := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				logging.Debug(logger, "live feed write failed", slog.Any(logging.FieldError, err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
