package server

import (
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/thesportsdb"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.Provider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderESPN, "":
		return espn.NewClient(espn.Config{
			BaseURL:   cfg.Providers.ESPNBaseURL,
			UserAgent: cfg.Providers.ESPNUserAgent,
			Timeout:   cfg.Providers.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// selectSecondary returns the fallback provider, or nil when fallback is off
// or the primary is the offline fixture.
func selectSecondary(cfg config.Config) providers.Provider {
	if !cfg.Providers.FallbackEnabled || cfg.Provider == config.ProviderFixture {
		return nil
	}
	return thesportsdb.NewClient(thesportsdb.Config{
		BaseURL: cfg.Providers.SportsDBBaseURL,
		APIKey:  cfg.Providers.SportsDBAPIKey,
		Timeout: cfg.Providers.Timeout,
	})
}
