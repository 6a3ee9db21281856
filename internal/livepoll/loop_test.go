package livepoll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

type fetchStep struct {
	ev  events.Event
	err error
}

type scriptedFetcher struct {
	mu      sync.Mutex
	steps   []fetchStep
	calls   int
	fetched chan int
	// block, when set, holds every fetch until closed.
	block chan struct{}
}

func newScriptedFetcher(steps ...fetchStep) *scriptedFetcher {
	return &scriptedFetcher{steps: steps, fetched: make(chan int, 64)}
}

func (f *scriptedFetcher) FetchFresh(ctx context.Context, id string) (events.Event, error) {
	f.mu.Lock()
	idx := f.calls
	if idx >= len(f.steps) {
		idx = len(f.steps) - 1
	}
	step := f.steps[idx]
	f.calls++
	n := f.calls
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	select {
	case f.fetched <- n:
	default:
	}
	return step.ev, step.err
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *scriptedFetcher) waitCalls(t *testing.T, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-f.fetched:
			if n >= want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %d fetches, got %d", want, f.Calls())
		}
	}
}

type updateSink struct {
	mu      sync.Mutex
	updates []Update
}

func (s *updateSink) listen(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, u)
}

func (s *updateSink) all() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Update(nil), s.updates...)
}

func liveEvent(home, away int, clock string) events.Event {
	ev := testutil.SampleEvent(leagues.NBA, "401", home, away)
	ev.Status.DisplayClock = clock
	return ev
}

func newTestLoop(f Fetcher, sink *updateSink, rec *metrics.Recorder) *Loop {
	return New(Config{
		EventID:      "nba_401",
		Fetcher:      f,
		Listener:     sink.listen,
		LiveInterval: 5 * time.Millisecond,
		IdleInterval: 5 * time.Millisecond,
		Metrics:      rec,
	})
}

func TestUnchangedFetchDoesNotNotifyButKeepsPolling(t *testing.T) {
	ev := liveEvent(10, 8, "5:00")
	f := newScriptedFetcher(fetchStep{ev: ev})
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	defer loop.Stop()
	f.waitCalls(t, 3)

	got := sink.all()
	if len(got) != 1 {
		t.Fatalf("expected a single visible update, got %d", len(got))
	}
	if !got[0].Changed || got[0].HomeScored || got[0].AwayScored {
		t.Fatalf("unexpected first update %+v", got[0])
	}
}

func TestScoreIncreaseSignalsSide(t *testing.T) {
	f := newScriptedFetcher(
		fetchStep{ev: liveEvent(10, 8, "5:00")},
		fetchStep{ev: liveEvent(12, 8, "4:40")},
		fetchStep{ev: liveEvent(12, 11, "4:10")},
		fetchStep{ev: liveEvent(12, 11, "4:10")},
	)
	sink := &updateSink{}
	rec := metrics.NewRecorder()
	loop := newTestLoop(f, sink, rec)

	loop.Start(context.Background())
	f.waitCalls(t, 4)
	loop.Stop()
	<-loop.Done()

	got := sink.all()
	if len(got) != 3 {
		t.Fatalf("expected three updates, got %d", len(got))
	}
	if !got[1].HomeScored || got[1].AwayScored {
		t.Fatalf("expected home scored, got %+v", got[1])
	}
	if got[2].HomeScored || !got[2].AwayScored {
		t.Fatalf("expected away scored, got %+v", got[2])
	}
	if got[2].Score.Home != 12 || got[2].Score.Away != 11 {
		t.Fatalf("unexpected score %+v", got[2].Score)
	}
	if rec.ScoreChanges("nba") != 2 {
		t.Fatalf("expected two recorded score changes, got %d", rec.ScoreChanges("nba"))
	}
}

func TestScoreDecreaseIsChangeWithoutScoringSignal(t *testing.T) {
	f := newScriptedFetcher(
		fetchStep{ev: liveEvent(10, 8, "5:00")},
		fetchStep{ev: liveEvent(7, 8, "5:00")},
	)
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	f.waitCalls(t, 3)
	loop.Stop()
	<-loop.Done()

	got := sink.all()
	if len(got) != 2 {
		t.Fatalf("expected two updates, got %d", len(got))
	}
	if !got[1].Changed || got[1].HomeScored || got[1].AwayScored {
		t.Fatalf("expected a plain change, got %+v", got[1])
	}
}

func TestFailureKeepsLastKnownGoodEvent(t *testing.T) {
	boom := errors.New("upstream down")
	f := newScriptedFetcher(
		fetchStep{ev: liveEvent(3, 1, "2:00")},
		fetchStep{err: boom},
	)
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	f.waitCalls(t, 3)
	loop.Stop()
	<-loop.Done()

	got := sink.all()
	if len(got) < 2 {
		t.Fatalf("expected failure update, got %d updates", len(got))
	}
	failed := got[1]
	if !errors.Is(failed.Err, boom) || !failed.Stale {
		t.Fatalf("expected stale failure update, got %+v", failed)
	}
	if failed.Event == nil || failed.Event.HomeTeam.Score != 3 || failed.Score.Home != 3 {
		t.Fatalf("expected last known good event, got %+v", failed.Event)
	}
}

func TestRecoveryWithUnchangedDataClearsFailure(t *testing.T) {
	boom := errors.New("upstream down")
	f := newScriptedFetcher(
		fetchStep{ev: liveEvent(10, 8, "5:00")},
		fetchStep{err: boom},
		fetchStep{ev: liveEvent(10, 8, "5:00")},
	)
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	f.waitCalls(t, 4)
	loop.Stop()
	<-loop.Done()

	got := sink.all()
	if len(got) != 3 {
		t.Fatalf("expected initial, failure and recovery updates, got %d", len(got))
	}
	recovered := got[2]
	if recovered.Stale || recovered.Err != nil {
		t.Fatalf("expected failure cleared, got %+v", recovered)
	}
	if recovered.Changed || recovered.HomeScored || recovered.AwayScored {
		t.Fatalf("expected no change or scoring signal for identical data, got %+v", recovered)
	}
	if recovered.Event == nil || recovered.Score.Home != 10 || recovered.Score.Away != 8 {
		t.Fatalf("expected current event on recovery, got %+v", recovered)
	}
}

func TestRecoveryWithNewScoreSignalsSide(t *testing.T) {
	f := newScriptedFetcher(
		fetchStep{ev: liveEvent(10, 8, "5:00")},
		fetchStep{err: errors.New("timeout")},
		fetchStep{ev: liveEvent(10, 11, "4:00")},
	)
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	f.waitCalls(t, 4)
	loop.Stop()
	<-loop.Done()

	got := sink.all()
	if len(got) != 3 {
		t.Fatalf("expected three updates, got %d", len(got))
	}
	if got[2].Stale || !got[2].Changed || !got[2].AwayScored || got[2].HomeScored {
		t.Fatalf("expected recovered away score, got %+v", got[2])
	}
}

func TestRefreshForcesUpdateWithoutScoringSignal(t *testing.T) {
	f := newScriptedFetcher(fetchStep{ev: liveEvent(1, 1, "1:00")})
	sink := &updateSink{}
	loop := New(Config{
		EventID:      "nba_401",
		Fetcher:      f,
		Listener:     sink.listen,
		LiveInterval: time.Hour,
		IdleInterval: time.Hour,
	})

	loop.Start(context.Background())
	defer loop.Stop()
	f.waitCalls(t, 1)

	loop.Refresh()
	f.waitCalls(t, 2)
	deadline := time.Now().Add(time.Second)
	for (len(sink.all()) < 2 || loop.State() != StateScheduled) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	got := sink.all()
	if len(got) != 2 {
		t.Fatalf("expected forced update, got %d updates", len(got))
	}
	if !got[1].Forced || got[1].Changed || got[1].HomeScored {
		t.Fatalf("unexpected forced update %+v", got[1])
	}
	if loop.State() != StateScheduled {
		t.Fatalf("expected scheduled state, got %s", loop.State())
	}
}

func TestStopDiscardsInFlightResult(t *testing.T) {
	f := newScriptedFetcher(fetchStep{ev: liveEvent(5, 5, "0:30")})
	f.block = make(chan struct{})
	sink := &updateSink{}
	loop := newTestLoop(f, sink, nil)

	loop.Start(context.Background())
	deadline := time.Now().Add(time.Second)
	for loop.State() != StateFetching && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if loop.State() != StateFetching {
		t.Fatalf("expected fetching state, got %s", loop.State())
	}

	loop.Stop()
	loop.Stop()
	close(f.block)
	<-loop.Done()

	if len(sink.all()) != 0 {
		t.Fatalf("expected in-flight result to be discarded")
	}
	if f.Calls() != 1 {
		t.Fatalf("expected no fetch after stop, got %d", f.Calls())
	}
	if loop.State() != StateIdle {
		t.Fatalf("expected idle after stop, got %s", loop.State())
	}
}

func TestContextCancelStopsLoop(t *testing.T) {
	f := newScriptedFetcher(fetchStep{ev: liveEvent(0, 0, "12:00")})
	loop := newTestLoop(f, &updateSink{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	loop.Start(ctx)
	f.waitCalls(t, 1)
	cancel()

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatalf("loop did not exit on cancel")
	}
	if loop.State() != StateIdle {
		t.Fatalf("expected idle, got %s", loop.State())
	}
}

func TestStopBeforeStart(t *testing.T) {
	f := newScriptedFetcher(fetchStep{ev: liveEvent(0, 0, "")})
	loop := newTestLoop(f, &updateSink{}, nil)
	loop.Stop()
	loop.Start(context.Background())

	select {
	case <-loop.Done():
	default:
		t.Fatalf("expected done to be closed")
	}
	if f.Calls() != 0 {
		t.Fatalf("expected no fetches")
	}
}

func TestDelayFollowsLiveStatus(t *testing.T) {
	loop := New(Config{EventID: "nba_1"})
	live := liveEvent(0, 0, "")
	final := live
	final.Status = events.NewStatus("Final", events.StatePost, 4, "0:00")

	if got := loop.delayFor(&live); got != DefaultLiveInterval {
		t.Fatalf("expected live interval, got %s", got)
	}
	if got := loop.delayFor(&final); got != DefaultIdleInterval {
		t.Fatalf("expected idle interval, got %s", got)
	}
	if got := loop.delayFor(nil); got != DefaultIdleInterval {
		t.Fatalf("expected idle interval without event, got %s", got)
	}
}

func TestContentHashIgnoresUnrelatedFields(t *testing.T) {
	a := liveEvent(1, 2, "3:00")
	b := a
	b.Venue.Name = "Elsewhere"
	b.Status.Period = 4
	ra := scores.Result{Home: 1, Away: 2}
	if contentHash(ra, a.Status) != contentHash(ra, b.Status) {
		t.Fatalf("expected hash to ignore period")
	}
	b.Status.DisplayClock = "2:59"
	if contentHash(ra, a.Status) == contentHash(ra, b.Status) {
		t.Fatalf("expected hash to cover clock")
	}
}
