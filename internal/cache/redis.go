package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

// DefaultKeyPrefix namespaces keys in a shared Redis.
const DefaultKeyPrefix = "scores:"

// Redis stores JSON-encoded values with native expiry, so several service
// instances can share one cache.
type Redis[T any] struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

// NewRedis wraps a go-redis client. An empty prefix uses DefaultKeyPrefix.
func NewRedis[T any](client redis.Cmdable, prefix string, logger *slog.Logger) *Redis[T] {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis[T]{client: client, prefix: prefix, logger: logger}
}

// Get reads and decodes an entry. Backend and decode errors are logged and
// reported as a miss.
func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		logging.Warn(r.logger, "cache read failed", slog.String(logging.FieldCacheKey, key), slog.Any(logging.FieldError, err))
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logging.Warn(r.logger, "cache decode failed", slog.String(logging.FieldCacheKey, key), slog.Any(logging.FieldError, err))
		return zero, false
	}
	return out, true
}

// Set encodes and stores value with the given ttl. Failures are logged only.
func (r *Redis[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		logging.Warn(r.logger, "cache encode failed", slog.String(logging.FieldCacheKey, key), slog.Any(logging.FieldError, err))
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, b, ttl).Err(); err != nil {
		logging.Warn(r.logger, "cache write failed", slog.String(logging.FieldCacheKey, key), slog.Any(logging.FieldError, err))
	}
}
