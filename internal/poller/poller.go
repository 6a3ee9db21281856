// Package poller keeps the configured leagues' scoreboards warm in the cache
// and tracks upstream health for readiness checks.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	domainevents "github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

const defaultInterval = time.Minute

// Aggregator fetches several league scoreboards with all-settled semantics.
type Aggregator interface {
	Aggregate(ctx context.Context, requested []leagues.League) domainevents.AggregateScoreboard
}

// Poller refreshes scoreboards on an interval.
type Poller struct {
	source   Aggregator
	leagues  []leagues.League
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	// FailedLeagues lists leagues that failed in the last cycle.
	FailedLeagues []leagues.League
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. An empty league list polls every supported league.
func New(source Aggregator, list []leagues.League, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if len(list) == 0 {
		list = leagues.All()
	}
	return &Poller{
		source:   source,
		leagues:  list,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started",
			slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
			slog.Int(logging.FieldCount, len(p.leagues)),
		)
		// Warm on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// fetchOnce counts a cycle as successful when at least one league loaded.
func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	agg := p.source.Aggregate(ctx, p.leagues)
	elapsed := time.Since(start)

	for _, league := range p.leagues {
		var err error
		if msg, failed := agg.Failed[league]; failed {
			err = errors.New(msg)
		}
		p.metrics.RecordPollerCycle(string(league), elapsed, err)
	}

	failed := make([]leagues.League, 0, len(agg.Failed))
	reasons := make([]string, 0, len(agg.Failed))
	for _, league := range p.leagues {
		if msg, ok := agg.Failed[league]; ok {
			failed = append(failed, league)
			reasons = append(reasons, string(league)+": "+msg)
			logging.Warn(p.logger, "poller league failed",
				slog.String(logging.FieldLeague, string(league)),
				slog.String(logging.FieldError, msg),
			)
		}
	}

	if len(agg.Leagues) == 0 && len(failed) > 0 {
		err := errors.New(strings.Join(reasons, "; "))
		logging.Error(p.logger, "poller fetch failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start, failed)
		return
	}

	p.recordSuccess(start, failed)
	logging.Info(p.logger, "poller refreshed scoreboards",
		slog.Int(logging.FieldCount, countEvents(agg)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
}

func countEvents(agg domainevents.AggregateScoreboard) int {
	n := 0
	for _, board := range agg.Leagues {
		n += len(board.Events)
	}
	return n
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, failed []leagues.League) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.FailedLeagues = failed
}

func (p *Poller) recordFailure(err error, at time.Time, failed []leagues.League) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.FailedLeagues = failed
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	s := p.status
	s.FailedLeagues = append([]leagues.League(nil), p.status.FailedLeagues...)
	return s
}

// Leagues returns the leagues polled each cycle.
func (p *Poller) Leagues() []leagues.League {
	return append([]leagues.League(nil), p.leagues...)
}
