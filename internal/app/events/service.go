// Package events is the read-through path from cache to provider to
// normalized events.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/cache"
	domainevents "github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/rosters"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/normalize"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
)

// Config wires a Service. Nil caches default to fresh in-memory caches.
type Config struct {
	Provider   providers.Provider
	EventCache cache.Cache[domainevents.Event]
	BoardCache cache.Cache[domainevents.Scoreboard]
	TTL        cache.TTLPolicy
	Resolver   *scores.Resolver
	Logger     *slog.Logger
}

// Service coordinates provider fetches, normalization and caching.
type Service struct {
	provider   providers.Provider
	events     cache.Cache[domainevents.Event]
	boards     cache.Cache[domainevents.Scoreboard]
	ttl        cache.TTLPolicy
	resolver   *scores.Resolver
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

// NewService constructs a Service from cfg.
func NewService(cfg Config) *Service {
	s := &Service{
		provider:   cfg.Provider,
		events:     cfg.EventCache,
		boards:     cfg.BoardCache,
		ttl:        cfg.TTL,
		resolver:   cfg.Resolver,
		normalizer: normalize.New(cfg.Logger),
		logger:     cfg.Logger,
	}
	if s.events == nil {
		s.events = cache.NewMemory[domainevents.Event]()
	}
	if s.boards == nil {
		s.boards = cache.NewMemory[domainevents.Scoreboard]()
	}
	if s.resolver == nil {
		s.resolver = scores.NewResolver()
	}
	return s
}

// Event returns the event for a composite id, from cache when fresh.
func (s *Service) Event(ctx context.Context, id string) (domainevents.Event, error) {
	league, providerID, err := domainevents.ParseID(id)
	if err != nil {
		return domainevents.Event{}, err
	}
	if ev, ok := s.events.Get(ctx, id); ok {
		return ev, nil
	}
	return s.fetchEvent(ctx, league, providerID, id)
}

// FetchFresh skips the cache read but still writes the result through.
func (s *Service) FetchFresh(ctx context.Context, id string) (domainevents.Event, error) {
	league, providerID, err := domainevents.ParseID(id)
	if err != nil {
		return domainevents.Event{}, err
	}
	return s.fetchEvent(ctx, league, providerID, id)
}

// Score returns the event along with its resolved score.
func (s *Service) Score(ctx context.Context, id string) (domainevents.Event, scores.Result, error) {
	ev, err := s.Event(ctx, id)
	if err != nil {
		return domainevents.Event{}, scores.Result{}, err
	}
	return ev, s.resolver.Resolve(ev), nil
}

// Resolve exposes the configured resolver.
func (s *Service) Resolve(ev domainevents.Event) scores.Result {
	return s.resolver.Resolve(ev)
}

func (s *Service) fetchEvent(ctx context.Context, league leagues.League, providerID, id string) (domainevents.Event, error) {
	raw, err := s.provider.FetchEventSummary(ctx, league, providerID)
	if err != nil {
		s.logFailure(ctx, "event fetch failed", err, slog.String(logging.FieldEventID, id))
		return domainevents.Event{}, err
	}
	ev, err := s.normalizer.Event(raw, league, id)
	if err != nil {
		s.logFailure(ctx, "event normalization failed", err, slog.String(logging.FieldEventID, id))
		return domainevents.Event{}, err
	}
	s.events.Set(ctx, id, ev, s.ttl.TTLFor(ev.Status))
	return ev, nil
}

// Scoreboard returns a league's normalized scoreboard. Individual events are
// also cached under their own ids.
func (s *Service) Scoreboard(ctx context.Context, league leagues.League) (domainevents.Scoreboard, error) {
	if err := providers.CheckLeague(league); err != nil {
		return domainevents.Scoreboard{}, err
	}
	key := cache.ScoreboardKey(string(league))
	if board, ok := s.boards.Get(ctx, key); ok {
		return board, nil
	}

	raw, err := s.provider.FetchScoreboard(ctx, league)
	if err != nil {
		s.logFailure(ctx, "scoreboard fetch failed", err, slog.String(logging.FieldLeague, string(league)))
		return domainevents.Scoreboard{}, err
	}
	board := domainevents.Scoreboard{
		League: league,
		Events: s.normalizer.Scoreboard(raw, league),
	}
	if raw.Day != nil {
		board.Day = raw.Day.Date
	}
	for _, ev := range board.Events {
		s.events.Set(ctx, ev.ID, ev, s.ttl.TTLFor(ev.Status))
	}
	s.boards.Set(ctx, key, board, s.ttl.Shortest(board.Events))
	return board, nil
}

// Aggregate fetches several leagues concurrently. One league failing does
// not affect the others; successes keep the requested order.
func (s *Service) Aggregate(ctx context.Context, requested []leagues.League) domainevents.AggregateScoreboard {
	boards := make([]domainevents.Scoreboard, len(requested))
	errs := make([]error, len(requested))

	var wg sync.WaitGroup
	for i, league := range requested {
		wg.Add(1)
		go func(i int, league leagues.League) {
			defer wg.Done()
			boards[i], errs[i] = s.Scoreboard(ctx, league)
		}(i, league)
	}
	wg.Wait()

	out := domainevents.AggregateScoreboard{Leagues: make([]domainevents.Scoreboard, 0, len(requested))}
	for i, league := range requested {
		if errs[i] != nil {
			if out.Failed == nil {
				out.Failed = make(map[leagues.League]string)
			}
			out.Failed[league] = errs[i].Error()
			continue
		}
		out.Leagues = append(out.Leagues, boards[i])
	}
	return out
}

// Roster returns a team roster, or nil when it cannot be fetched. Rosters
// are optional enrichment and never fail the caller.
func (s *Service) Roster(ctx context.Context, league leagues.League, teamID string) *rosters.TeamRoster {
	raw, err := s.provider.FetchTeamRoster(ctx, league, teamID)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "roster unavailable",
			slog.String(logging.FieldLeague, string(league)),
			slog.String(logging.FieldTeamID, teamID),
			slog.Any(logging.FieldError, err),
		)
		return nil
	}
	return s.normalizer.Roster(raw)
}

// logFailure keeps malformed payloads distinguishable from upstream outages.
func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.FromContext(ctx, s.logger)
	var malformed *normalize.MalformedPayloadError
	switch {
	case errors.As(err, &malformed):
		attrs = append(attrs, slog.String(logging.FieldReason, malformed.Reason.Error()))
		logging.Warn(logger, msg, attrs...)
	case errors.Is(err, context.Canceled):
		logging.Debug(logger, msg, attrs...)
	default:
		logging.Error(logger, msg, err, attrs...)
	}
}
