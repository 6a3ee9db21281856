package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookup resolves a key to its raw value, "" when unset.
type lookup func(key string) string

// layered prefers the process environment and falls back to file values.
func layered(file map[string]string) lookup {
	return func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return file[key]
	}
}

func envOrDefault(env lookup, key, defaultValue string) string {
	val := strings.TrimSpace(env(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(env lookup, key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(env(key))
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(env lookup, key string, defaultValue int) int {
	raw := strings.TrimSpace(env(key))
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(env lookup, key string, defaultValue bool) bool {
	raw := strings.TrimSpace(env(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

func listEnvOrDefault(env lookup, key, defaultValue string) []string {
	raw := envOrDefault(env, key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
