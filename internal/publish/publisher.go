// Package publish fans score changes out to other processes.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/livepoll"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

// StreamPrefix is prepended to the league to form the stream key.
const StreamPrefix = "scores.updates."

const publishTimeout = 2 * time.Second

// Sides of a score change.
const (
	SideHome = "home"
	SideAway = "away"
	SideBoth = "both"
)

// ScoreChange is the payload emitted when a live score increases.
type ScoreChange struct {
	EventID    string    `json:"event_id"`
	League     string    `json:"league"`
	Home       int       `json:"home"`
	Away       int       `json:"away"`
	Side       string    `json:"side"`
	Status     string    `json:"status,omitempty"`
	Clock      string    `json:"clock,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Publisher delivers score changes.
type Publisher interface {
	Publish(ctx context.Context, change ScoreChange) error
}

// Noop discards every change.
type Noop struct{}

func (Noop) Publish(context.Context, ScoreChange) error { return nil }

// StreamPublisher appends score changes to a per-league Redis stream.
type StreamPublisher struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewStreamPublisher returns a Redis stream publisher.
func NewStreamPublisher(client redis.Cmdable) *StreamPublisher {
	return &StreamPublisher{client: client, now: time.Now}
}

// StreamKey returns the stream a league's changes go to.
func StreamKey(league string) string {
	return StreamPrefix + league
}

// Publish XADDs the change with its JSON form under "data".
func (p *StreamPublisher) Publish(ctx context.Context, change ScoreChange) error {
	if change.RecordedAt.IsZero() {
		change.RecordedAt = p.now().UTC()
	}
	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal score change: %w", err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(change.League),
		Values: map[string]any{
			"data":     string(body),
			"event_id": change.EventID,
			"home":     change.Home,
			"away":     change.Away,
			"side":     change.Side,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

// FromUpdate builds a ScoreChange when the update carries a score increase.
func FromUpdate(u livepoll.Update) (ScoreChange, bool) {
	if u.Event == nil || (!u.HomeScored && !u.AwayScored) {
		return ScoreChange{}, false
	}
	side := SideHome
	switch {
	case u.HomeScored && u.AwayScored:
		side = SideBoth
	case u.AwayScored:
		side = SideAway
	}
	league, _, err := events.ParseID(u.EventID)
	if err != nil {
		return ScoreChange{}, false
	}
	return ScoreChange{
		EventID: u.EventID,
		League:  string(league),
		Home:    u.Score.Home,
		Away:    u.Score.Away,
		Side:    side,
		Status:  u.Event.Status.Description,
		Clock:   u.Event.Status.DisplayClock,
	}, true
}

// Listener adapts a Publisher to the live poll manager. Failures are logged
// and never reach the poll loop.
func Listener(pub Publisher, logger *slog.Logger) livepoll.Listener {
	return func(u livepoll.Update) {
		change, ok := FromUpdate(u)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := pub.Publish(ctx, change); err != nil {
			logging.Warn(logger, "score change publish failed",
				slog.String(logging.FieldEventID, change.EventID),
				slog.Any(logging.FieldError, err),
			)
		}
	}
}
