// Package http assembles the chi router for the scores API.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

// RouterConfig carries the cross-cutting middleware settings.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers the API routes behind logging, recovery and CORS.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scoreboard", handler.Aggregate)

		r.Route("/leagues/{league}", func(r chi.Router) {
			r.Get("/scoreboard", handler.LeagueScoreboard)
			r.Get("/teams/{teamID}/roster", handler.Roster)
		})

		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", handler.Event)
			r.Get("/score", handler.EventScore)
			r.Get("/live", handler.Live)
		})
	})

	return r
}
