package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	Provider    string
	Providers   ProvidersConfig
	Cache       CacheConfig
	Poll        PollConfig
	Leagues     []leagues.League
	CORSOrigins []string
	Metrics     MetricsConfig
}

// ProvidersConfig configures the upstream clients.
type ProvidersConfig struct {
	Timeout         Duration
	ESPNBaseURL     string
	ESPNUserAgent   string
	SportsDBBaseURL string
	SportsDBAPIKey  string
	FallbackEnabled bool
}

// CacheConfig selects the cache backend and lifecycle TTLs.
type CacheConfig struct {
	Backend      string
	RedisURL     string
	LiveTTL      Duration
	FinalTTL     Duration
	ScheduledTTL Duration
}

// PollConfig controls the scoreboard warmer and live event loops.
type PollConfig struct {
	Interval     Duration
	LiveInterval Duration
	IdleInterval Duration
}

// Load reads .env, the optional CONFIG_FILE overlay and the environment, in
// increasing order of precedence, with sensible defaults.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	file, err := readFile(os.Getenv(envConfigFile))
	if err != nil {
		return Config{}, err
	}
	return load(layered(file))
}

func load(env lookup) (Config, error) {
	cfg := Config{
		Port:      envOrDefault(env, envPort, defaultPort),
		LogLevel:  envOrDefault(env, envLogLevel, defaultLogLevel),
		LogFormat: envOrDefault(env, envLogFormat, defaultLogFormat),
		Provider:  strings.ToLower(envOrDefault(env, envProvider, defaultProvider)),
		Providers: ProvidersConfig{
			Timeout:         durationEnvOrDefault(env, envProviderTimeout, defaultProviderTimeout),
			ESPNBaseURL:     envOrDefault(env, envESPNBaseURL, ""),
			ESPNUserAgent:   envOrDefault(env, envESPNUserAgent, ""),
			SportsDBBaseURL: envOrDefault(env, envSportsDBBaseURL, ""),
			SportsDBAPIKey:  envOrDefault(env, envSportsDBAPIKey, ""),
			FallbackEnabled: boolEnvOrDefault(env, envFallbackEnabled, defaultFallback),
		},
		Cache: CacheConfig{
			Backend:      strings.ToLower(envOrDefault(env, envCacheBackend, defaultCacheBackend)),
			RedisURL:     envOrDefault(env, envRedisURL, ""),
			LiveTTL:      durationEnvOrDefault(env, envCacheTTLLive, defaultCacheTTLLive),
			FinalTTL:     durationEnvOrDefault(env, envCacheTTLFinal, defaultCacheTTLFinal),
			ScheduledTTL: durationEnvOrDefault(env, envCacheTTLSched, defaultCacheTTLSched),
		},
		Poll: PollConfig{
			Interval:     durationEnvOrDefault(env, envPollInterval, defaultPollInterval),
			LiveInterval: durationEnvOrDefault(env, envPollLiveInterval, defaultPollLiveInterval),
			IdleInterval: durationEnvOrDefault(env, envPollIdleInterval, defaultPollIdleInterval),
		},
		CORSOrigins: listEnvOrDefault(env, envCORSOrigins, defaultCORSOrigins),
		Metrics:     loadMetrics(env),
	}

	var err error
	cfg.Leagues, err = leagues.ParseList(envOrDefault(env, envLeagues, defaultLeagues))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", envLeagues, err)
	}
	if len(cfg.Leagues) == 0 {
		cfg.Leagues = leagues.All()
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderESPN, ProviderFixture:
	default:
		return fmt.Errorf("%s: unknown provider %q", envProvider, c.Provider)
	}
	switch c.Cache.Backend {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("%s=redis requires %s", envCacheBackend, envRedisURL)
		}
	default:
		return fmt.Errorf("%s: unknown backend %q", envCacheBackend, c.Cache.Backend)
	}
	return nil
}
