package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// fallbackProvider tries the primary and, only when it is unavailable,
// the secondary. Each provider is still called at most once. Only scoreboards
// fall back: summaries and rosters are keyed by provider ids, and the
// secondary's id namespace does not match the primary's.
type fallbackProvider struct {
	primary   Provider
	secondary Provider
	logger    *slog.Logger
	recorder  *metrics.Recorder
}

// NewFallback chains primary and secondary. A nil secondary returns an
// instrumented primary.
func NewFallback(primary, secondary Provider, logger *slog.Logger, recorder *metrics.Recorder) Provider {
	if secondary == nil {
		return NewInstrumented(primary, recorder)
	}
	return &fallbackProvider{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		recorder:  recorder,
	}
}

func (f *fallbackProvider) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

func (f *fallbackProvider) FetchScoreboard(ctx context.Context, league leagues.League) (*payload.Scoreboard, error) {
	return run(ctx, f, league, func(p Provider) (*payload.Scoreboard, error) {
		return p.FetchScoreboard(ctx, league)
	})
}

func (f *fallbackProvider) FetchEventSummary(ctx context.Context, league leagues.League, providerEventID string) (*payload.Summary, error) {
	if err := CheckLeague(league); err != nil {
		return nil, err
	}
	return attempt(f.recorder, f.primary, func(p Provider) (*payload.Summary, error) {
		return p.FetchEventSummary(ctx, league, providerEventID)
	})
}

func (f *fallbackProvider) FetchTeamRoster(ctx context.Context, league leagues.League, teamID string) (*payload.Roster, error) {
	if err := CheckLeague(league); err != nil {
		return nil, err
	}
	return attempt(f.recorder, f.primary, func(p Provider) (*payload.Roster, error) {
		return p.FetchTeamRoster(ctx, league, teamID)
	})
}

func run[T any](ctx context.Context, f *fallbackProvider, league leagues.League, call func(Provider) (T, error)) (T, error) {
	if err := CheckLeague(league); err != nil {
		var zero T
		return zero, err
	}
	out, err := attempt(f.recorder, f.primary, call)
	if err == nil || !IsUpstreamUnavailable(err) {
		return out, err
	}
	logWithProvider(ctx, f.logger, slog.LevelWarn, f.primary.Name(), "primary provider unavailable, trying secondary",
		slog.String(logging.FieldLeague, string(league)),
		slog.String("secondary", f.secondary.Name()),
		slog.Any(logging.FieldError, err),
	)
	secondaryOut, secondaryErr := attempt(f.recorder, f.secondary, call)
	if secondaryErr != nil {
		logWithProvider(ctx, f.logger, slog.LevelWarn, f.secondary.Name(), "secondary provider failed",
			slog.String(logging.FieldLeague, string(league)),
			slog.Any(logging.FieldError, secondaryErr),
		)
		return out, err
	}
	return secondaryOut, nil
}

func attempt[T any](recorder *metrics.Recorder, p Provider, call func(Provider) (T, error)) (T, error) {
	start := time.Now()
	out, err := call(p)
	recorder.RecordProviderAttempt(p.Name(), time.Since(start), err)
	if rl, ok := AsRateLimitError(err); ok {
		recorder.RecordRateLimit(p.Name(), rl.RetryAfter)
	}
	return out, err
}
