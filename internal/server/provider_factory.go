package server

import (
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (fallback + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.Provider {
	return f.wrap(selectProvider(cfg, f.logger), selectSecondary(cfg))
}

func (f providerFactory) wrap(primary, secondary providers.Provider) providers.Provider {
	return providers.NewFallback(primary, secondary, f.logger, f.metrics)
}
