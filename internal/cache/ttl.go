package cache

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
)

// Default lifecycle TTLs.
const (
	DefaultLiveTTL      = 15 * time.Second
	DefaultFinalTTL     = 24 * time.Hour
	DefaultScheduledTTL = 5 * time.Minute
)

// TTLPolicy picks an entry lifetime from an event's lifecycle. Finished
// games do not change, live ones change constantly.
type TTLPolicy struct {
	Live      time.Duration
	Final     time.Duration
	Scheduled time.Duration
}

// DefaultTTLPolicy returns the default lifecycle TTLs.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{Live: DefaultLiveTTL, Final: DefaultFinalTTL, Scheduled: DefaultScheduledTTL}
}

// For returns the TTL for a lifecycle, falling back to defaults for unset fields.
func (p TTLPolicy) For(l events.Lifecycle) time.Duration {
	switch l {
	case events.LifecycleLive:
		return orDefault(p.Live, DefaultLiveTTL)
	case events.LifecycleFinal:
		return orDefault(p.Final, DefaultFinalTTL)
	default:
		return orDefault(p.Scheduled, DefaultScheduledTTL)
	}
}

// TTLFor returns the TTL for an event status.
func (p TTLPolicy) TTLFor(s events.Status) time.Duration {
	return p.For(s.Lifecycle())
}

// Shortest returns the smallest TTL across a set of events; an empty set is
// treated as scheduled.
func (p TTLPolicy) Shortest(evs []events.Event) time.Duration {
	if len(evs) == 0 {
		return p.For(events.LifecycleScheduled)
	}
	shortest := p.TTLFor(evs[0].Status)
	for _, ev := range evs[1:] {
		if ttl := p.TTLFor(ev.Status); ttl < shortest {
			shortest = ttl
		}
	}
	return shortest
}

func orDefault(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
