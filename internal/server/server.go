// Package server wires providers, caches, live polling and the HTTP API into
// one runnable process.
package server

import (
	"context"
	"log/slog"
	"net/http"

	appevents "github.com/preston-bernstein/sports-scores-service/internal/app/events"
	"github.com/preston-bernstein/sports-scores-service/internal/cache"
	"github.com/preston-bernstein/sports-scores-service/internal/config"
	httpserver "github.com/preston-bernstein/sports-scores-service/internal/http"
	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/livepoll"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/publish"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *appevents.Service
	live          *livepoll.Manager
	stores        stores
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	// closing ends open websocket feeds, which http.Server.Shutdown does not track.
	closing chan struct{}
}

// New constructs a server with the configured provider chain, caches and poller.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.Provider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.Provider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(provider, nil)
	}

	st, err := buildStores(cfg, logger, recorder)
	if err != nil {
		return nil, err
	}

	svc := appevents.NewService(appevents.Config{
		Provider:   provider,
		EventCache: st.events,
		BoardCache: st.boards,
		TTL:        ttlPolicy(cfg),
		Logger:     logger,
	})
	live := livepoll.NewManager(livepoll.ManagerConfig{
		Fetcher:      svc,
		LiveInterval: cfg.Poll.LiveInterval,
		IdleInterval: cfg.Poll.IdleInterval,
		Logger:       logger,
		Metrics:      recorder,
		OnUpdate:     publish.Listener(st.publisher, logger),
	})
	plr := poller.New(svc, cfg.Leagues, logger, recorder, cfg.Poll.Interval)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		live:          live,
		stores:        st,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		closing:       make(chan struct{}),
	}
	s.httpServer = s.buildHTTPServer()
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		closing:    make(chan struct{}),
	}
}

func ttlPolicy(cfg config.Config) cache.TTLPolicy {
	return cache.TTLPolicy{
		Live:      cfg.Cache.LiveTTL,
		Final:     cfg.Cache.FinalTTL,
		Scheduled: cfg.Cache.ScheduledTTL,
	}
}

func (s *Server) buildHTTPServer() httpServer {
	var statusFn func() poller.Status
	if s.poller != nil {
		statusFn = s.poller.Status
	}
	var live handlers.LiveFeed
	if s.live != nil {
		live = s.live
	}

	handler := handlers.NewHandler(handlers.Config{
		Service:        s.service,
		Live:           live,
		Status:         statusFn,
		Leagues:        s.cfg.Leagues,
		AllowedOrigins: s.cfg.CORSOrigins,
		Logger:         s.logger,
		Done:           s.closing,
	})
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		Logger:      s.logger,
		Metrics:     s.metrics,
		CORSOrigins: s.cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	close(s.closing)

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.live != nil {
		if err := s.live.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "live poll shutdown incomplete", slog.Any(logging.FieldError, err))
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.stores.close(); err != nil {
		logging.Warn(s.logger, "redis close failed", slog.Any(logging.FieldError, err))
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any(logging.FieldError, err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any(logging.FieldError, err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
