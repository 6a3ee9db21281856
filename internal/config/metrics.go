package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(env lookup) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(env, envMetricsOn, true),
		Port:         envOrDefault(env, envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(env, envOtelEndpoint, ""),
		ServiceName:  envOrDefault(env, envOtelService, "sports-scores-service"),
		OtlpInsecure: boolEnvOrDefault(env, envOtelInsecure, true),
	}
}
