// Package livepoll keeps one event fresh by polling it on a lifecycle-driven
// interval and reporting visible changes to a listener.
package livepoll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
)

const (
	DefaultLiveInterval = 10 * time.Second
	DefaultIdleInterval = 60 * time.Second
)

// State is the loop's position in its fetch cycle.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateScheduled State = "scheduled"
)

// Fetcher loads an event without consulting the read cache.
type Fetcher interface {
	FetchFresh(ctx context.Context, id string) (events.Event, error)
}

// Update is delivered to the listener whenever the visible state changes, a
// refresh was forced, a fetch failed, or the first fetch after a failure
// succeeded.
type Update struct {
	EventID string
	// Event is the last known good event; nil until the first success.
	Event      *events.Event
	Score      scores.Result
	Changed    bool
	Forced     bool
	HomeScored bool
	AwayScored bool
	Err        error
	// Stale is set when Event predates a failed fetch.
	Stale bool
}

// Listener receives updates on the loop goroutine.
type Listener func(Update)

// Config wires a Loop. Zero intervals use the defaults.
type Config struct {
	EventID      string
	Fetcher      Fetcher
	Resolver     *scores.Resolver
	Listener     Listener
	LiveInterval time.Duration
	IdleInterval time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
}

// Loop polls a single event. Fetches are strictly sequential.
type Loop struct {
	id       string
	league   string
	fetcher  Fetcher
	resolver *scores.Resolver
	listener Listener
	live     time.Duration
	idle     time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder

	refresh chan struct{}
	stop    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	state   State
	started bool
	stopped bool

	// Owned by the loop goroutine.
	last      *events.Event
	lastScore scores.Result
	lastHash  uint64
	hasHash   bool
	failing   bool
}

// New builds an idle loop.
func New(cfg Config) *Loop {
	l := &Loop{
		id:       cfg.EventID,
		league:   leagueOf(cfg.EventID),
		fetcher:  cfg.Fetcher,
		resolver: cfg.Resolver,
		listener: cfg.Listener,
		live:     cfg.LiveInterval,
		idle:     cfg.IdleInterval,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		refresh:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    StateIdle,
	}
	if l.resolver == nil {
		l.resolver = scores.NewResolver()
	}
	if l.live <= 0 {
		l.live = DefaultLiveInterval
	}
	if l.idle <= 0 {
		l.idle = DefaultIdleInterval
	}
	return l
}

// Start launches the loop goroutine, which fetches immediately. Cancelling
// ctx has the same effect as Stop. Calls after the first are ignored.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.started || l.stopped {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	go l.run(ctx)
}

// Stop ends the loop and clears the pending timer. An in-flight fetch runs
// to completion but its result is dropped. Safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.state = StateIdle
	started := l.started
	l.mu.Unlock()

	close(l.stop)
	if !started {
		close(l.done)
	}
}

// Refresh requests an immediate fetch whose update is delivered even when
// nothing changed. Requests made while a fetch is running are coalesced.
func (l *Loop) Refresh() {
	select {
	case l.refresh <- struct{}{}:
	default:
	}
}

// State reports the current cycle position.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Done is closed once the loop has fully exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	defer l.Stop()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		forced := false
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-l.refresh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			forced = true
		case <-timer.C:
		}

		delay, ok := l.cycle(ctx, forced)
		if !ok {
			return
		}
		l.setState(StateScheduled)
		timer.Reset(delay)
	}
}

// cycle runs one fetch and returns the next delay. ok is false when the loop
// was stopped while the fetch was in flight.
func (l *Loop) cycle(ctx context.Context, forced bool) (time.Duration, bool) {
	l.setState(StateFetching)
	start := time.Now()
	ev, err := l.fetcher.FetchFresh(ctx, l.id)
	l.metrics.RecordPollerCycle(l.league, time.Since(start), err)

	if l.isStopped() || ctx.Err() != nil {
		return 0, false
	}

	if err != nil {
		l.failing = true
		logging.Warn(l.logger, "live poll fetch failed",
			slog.String(logging.FieldEventID, l.id),
			slog.Any(logging.FieldError, err),
		)
		l.emit(Update{
			EventID: l.id,
			Event:   l.last,
			Score:   l.lastScore,
			Forced:  forced,
			Err:     err,
			Stale:   true,
		})
		return l.delayFor(l.last), true
	}

	recovered := l.failing
	l.failing = false
	score := l.resolver.Resolve(ev)
	hash := contentHash(score, ev.Status)
	upd := Update{
		EventID: l.id,
		Event:   &ev,
		Score:   score,
		Forced:  forced,
		Changed: !l.hasHash || hash != l.lastHash,
	}
	if l.hasHash && upd.Changed {
		upd.HomeScored = score.Home > l.lastScore.Home
		upd.AwayScored = score.Away > l.lastScore.Away
	}
	visible := upd.Changed || forced || recovered
	if visible {
		l.last = &ev
		l.lastScore = score
	}
	l.lastHash = hash
	l.hasHash = true

	if upd.HomeScored {
		l.metrics.RecordScoreChange(l.league, "home")
	}
	if upd.AwayScored {
		l.metrics.RecordScoreChange(l.league, "away")
	}
	if visible {
		l.emit(upd)
	}
	return l.delayFor(&ev), true
}

func (l *Loop) emit(u Update) {
	if l.listener != nil {
		l.listener(u)
	}
}

func (l *Loop) delayFor(ev *events.Event) time.Duration {
	if ev != nil && ev.Status.IsLive {
		return l.live
	}
	return l.idle
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.state = s
	}
}

func (l *Loop) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// contentHash covers exactly what a viewer would notice changing.
func contentHash(score scores.Result, status events.Status) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%d\x00%d\x00%s\x00%s", score.Home, score.Away, status.Description, status.DisplayClock))
}

func leagueOf(id string) string {
	league, _, err := events.ParseID(id)
	if err != nil {
		return "unknown"
	}
	return string(league)
}
