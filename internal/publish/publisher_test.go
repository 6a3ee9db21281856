package publish

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/livepoll"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestStreamPublisherWritesEntry(t *testing.T) {
	rdb := newRedis(t)
	ctx := context.Background()
	pub := NewStreamPublisher(rdb)
	pub.now = func() time.Time { return time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC) }

	change := ScoreChange{EventID: "nba_401", League: "nba", Home: 12, Away: 8, Side: SideHome}
	if err := pub.Publish(ctx, change); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	entries, err := rdb.XRange(ctx, StreamKey("nba"), "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d; want 1", len(entries))
	}
	values := entries[0].Values
	if values["event_id"] != "nba_401" || values["side"] != SideHome || values["home"] != "12" || values["away"] != "8" {
		t.Fatalf("unexpected fields %+v", values)
	}
	var got ScoreChange
	if err := json.Unmarshal([]byte(values["data"].(string)), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Home != 12 || got.RecordedAt.IsZero() {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestStreamPublisherReportsRedisErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	err = NewStreamPublisher(rdb).Publish(context.Background(), ScoreChange{EventID: "nba_1", League: "nba"})
	if err == nil || !strings.Contains(err.Error(), "xadd") {
		t.Fatalf("expected xadd error, got %v", err)
	}
}

func TestFromUpdate(t *testing.T) {
	ev := testutil.SampleEvent(leagues.NHL, "9", 2, 2)
	cases := []struct {
		name     string
		update   livepoll.Update
		wantOK   bool
		wantSide string
	}{
		{name: "no change", update: livepoll.Update{EventID: ev.ID, Event: &ev, Changed: true}},
		{name: "no event", update: livepoll.Update{EventID: ev.ID, HomeScored: true}},
		{name: "home", update: livepoll.Update{EventID: ev.ID, Event: &ev, HomeScored: true}, wantOK: true, wantSide: SideHome},
		{name: "away", update: livepoll.Update{EventID: ev.ID, Event: &ev, AwayScored: true}, wantOK: true, wantSide: SideAway},
		{name: "both", update: livepoll.Update{EventID: ev.ID, Event: &ev, HomeScored: true, AwayScored: true}, wantOK: true, wantSide: SideBoth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.update.Score = scores.Result{Home: 2, Away: 2}
			change, ok := FromUpdate(tc.update)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && (change.Side != tc.wantSide || change.League != "nhl" || change.Clock != "5:00") {
				t.Fatalf("unexpected change %+v", change)
			}
		})
	}
}

type recordingPublisher struct {
	changes []ScoreChange
	err     error
}

func (r *recordingPublisher) Publish(_ context.Context, c ScoreChange) error {
	r.changes = append(r.changes, c)
	return r.err
}

func TestListenerPublishesOnlyScoreIncreases(t *testing.T) {
	ev := testutil.SampleEvent(leagues.NBA, "1", 3, 0)
	rec := &recordingPublisher{err: errors.New("down")}
	logger, buf := testutil.NewBufferLogger()
	listen := Listener(rec, logger)

	listen(livepoll.Update{EventID: ev.ID, Event: &ev, Changed: true})
	listen(livepoll.Update{EventID: ev.ID, Event: &ev, Changed: true, HomeScored: true, Score: scores.Result{Home: 3}})

	if len(rec.changes) != 1 || rec.changes[0].Home != 3 {
		t.Fatalf("unexpected published changes %+v", rec.changes)
	}
	if !strings.Contains(buf.String(), "score change publish failed") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
	if err := (Noop{}).Publish(context.Background(), rec.changes[0]); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}
