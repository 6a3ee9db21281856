package config

import "time"

const (
	envConfigFile       = "CONFIG_FILE"
	envPort             = "PORT"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envProvider         = "PROVIDER"
	envProviderTimeout  = "PROVIDER_TIMEOUT"
	envESPNBaseURL      = "ESPN_BASE_URL"
	envESPNUserAgent    = "ESPN_USER_AGENT"
	envSportsDBBaseURL  = "THESPORTSDB_BASE_URL"
	envSportsDBAPIKey   = "THESPORTSDB_API_KEY"
	envFallbackEnabled  = "FALLBACK_ENABLED"
	envCacheBackend     = "CACHE_BACKEND"
	envRedisURL         = "REDIS_URL"
	envCacheTTLLive     = "CACHE_TTL_LIVE"
	envCacheTTLFinal    = "CACHE_TTL_FINAL"
	envCacheTTLSched    = "CACHE_TTL_SCHEDULED"
	envPollInterval     = "POLL_INTERVAL"
	envPollLiveInterval = "POLL_LIVE_INTERVAL"
	envPollIdleInterval = "POLL_IDLE_INTERVAL"
	envLeagues          = "LEAGUES"
	envCORSOrigins      = "CORS_ORIGINS"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	defaultProvider  = ProviderESPN
	// Per-request bound on upstream calls.
	defaultProviderTimeout = 10 * Duration(time.Second)
	defaultFallback        = true
	defaultCacheBackend    = CacheMemory
	defaultCacheTTLLive    = 15 * Duration(time.Second)
	defaultCacheTTLFinal   = 24 * Duration(time.Hour)
	defaultCacheTTLSched   = 5 * Duration(time.Minute)
	// Scoreboard warm cadence; the board cache absorbs anything shorter.
	defaultPollInterval     = Duration(time.Minute)
	defaultPollLiveInterval = 10 * Duration(time.Second)
	defaultPollIdleInterval = 60 * Duration(time.Second)
	defaultLeagues          = "nba,nfl,mlb,nhl,mls"
	defaultCORSOrigins      = "*"
	defaultMetricsPort      = "9090"
)

// Provider names accepted by PROVIDER.
const (
	ProviderESPN    = "espn"
	ProviderFixture = "fixture"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)
