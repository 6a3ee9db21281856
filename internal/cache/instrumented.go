package cache

import (
	"context"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

type instrumented[T any] struct {
	next     Cache[T]
	name     string
	recorder *metrics.Recorder
}

// Instrument records hits and misses for every Get under the given name.
func Instrument[T any](next Cache[T], name string, recorder *metrics.Recorder) Cache[T] {
	if recorder == nil {
		return next
	}
	return &instrumented[T]{next: next, name: name, recorder: recorder}
}

func (c *instrumented[T]) Get(ctx context.Context, key string) (T, bool) {
	v, ok := c.next.Get(ctx, key)
	c.recorder.RecordCacheLookup(c.name, ok)
	return v, ok
}

func (c *instrumented[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	c.next.Set(ctx, key, value, ttl)
}
