package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/cache"
	"github.com/preston-bernstein/sports-scores-service/internal/config"
	domainevents "github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/publish"
)

var errRedisURLRequired = errors.New("redis cache backend requires a redis url")

// stores bundles the caches and the score-change publisher. A configured
// REDIS_URL enables stream publishing even when caching stays in memory.
type stores struct {
	events    cache.Cache[domainevents.Event]
	boards    cache.Cache[domainevents.Scoreboard]
	publisher publish.Publisher
	redis     *redis.Client
}

func buildStores(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (stores, error) {
	var client *redis.Client
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			return stores{}, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opts)
	}

	s := stores{redis: client, publisher: publish.Noop{}}
	if client != nil {
		s.publisher = publish.NewStreamPublisher(client)
	}

	switch cfg.Cache.Backend {
	case config.CacheRedis:
		if client == nil {
			return stores{}, errRedisURLRequired
		}
		s.events = cache.NewRedis[domainevents.Event](client, cache.DefaultKeyPrefix, logger)
		s.boards = cache.NewRedis[domainevents.Scoreboard](client, cache.DefaultKeyPrefix, logger)
	default:
		s.events = cache.NewMemory[domainevents.Event]()
		s.boards = cache.NewMemory[domainevents.Scoreboard]()
	}

	s.events = cache.Instrument(s.events, "events", recorder)
	s.boards = cache.Instrument(s.boards, "scoreboards", recorder)
	return s, nil
}

func (s stores) close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}
