// Package cache holds short-lived normalized results keyed by canonical id.
package cache

import (
	"context"
	"time"
)

// Cache stores values with a per-entry TTL. A miss, an expired entry and a
// backend failure all read as (zero, false).
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, ttl time.Duration)
}

// ScoreboardKey is the cache key for a league scoreboard. Event entries are
// keyed by the composite event id directly.
func ScoreboardKey(league string) string {
	return "scoreboard:" + league
}
