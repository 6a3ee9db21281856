package livepoll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/scores"
)

// ManagerConfig carries the settings shared by every loop a Manager starts.
type ManagerConfig struct {
	Fetcher      Fetcher
	Resolver     *scores.Resolver
	LiveInterval time.Duration
	IdleInterval time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	// OnUpdate sees every update from every loop, after subscribers.
	OnUpdate Listener
}

// Manager shares one loop per event across subscribers and stops a loop when
// its last subscriber leaves.
type Manager struct {
	cfg    ManagerConfig
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	loops  map[string]*shared
	closed bool
}

type shared struct {
	loop *Loop
	mu   sync.Mutex
	subs map[string]Listener
	last *Update
}

// Subscription is one subscriber's handle on a shared loop.
type Subscription struct {
	ID      string
	EventID string

	manager *Manager
	once    sync.Once
}

// NewManager builds a manager with no running loops.
func NewManager(cfg ManagerConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		loops:  make(map[string]*shared),
	}
}

// Subscribe attaches fn to the loop for eventID, starting it if needed. A
// late subscriber immediately receives the most recent update.
func (m *Manager) Subscribe(eventID string, fn Listener) *Subscription {
	sub := &Subscription{ID: uuid.NewString(), EventID: eventID, manager: m}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return sub
	}
	s, ok := m.loops[eventID]
	if !ok {
		s = &shared{subs: make(map[string]Listener)}
		s.loop = New(Config{
			EventID:      eventID,
			Fetcher:      m.cfg.Fetcher,
			Resolver:     m.cfg.Resolver,
			Listener:     func(u Update) { m.broadcast(s, u) },
			LiveInterval: m.cfg.LiveInterval,
			IdleInterval: m.cfg.IdleInterval,
			Logger:       m.cfg.Logger,
			Metrics:      m.cfg.Metrics,
		})
		m.loops[eventID] = s
	}
	s.mu.Lock()
	s.subs[sub.ID] = fn
	last := s.last
	s.mu.Unlock()
	m.mu.Unlock()

	if !ok {
		logging.Info(m.cfg.Logger, "live poll started", slog.String(logging.FieldEventID, eventID))
		s.loop.Start(m.ctx)
	}
	if last != nil && fn != nil {
		fn(*last)
	}
	return sub
}

// Refresh forces an immediate fetch on the subscription's loop.
func (s *Subscription) Refresh() {
	s.manager.refresh(s.EventID)
}

// Close detaches the subscriber. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.manager.unsubscribe(s.EventID, s.ID) })
}

// Active reports how many loops are running.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loops)
}

// Subscribers reports how many subscribers share the loop for eventID.
func (m *Manager) Subscribers(eventID string) int {
	m.mu.Lock()
	s, ok := m.loops[eventID]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close stops every loop and rejects new subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	loops := m.loops
	m.loops = make(map[string]*shared)
	m.mu.Unlock()

	m.cancel()
	for _, s := range loops {
		s.loop.Stop()
	}
}

// Shutdown closes the manager and waits for loops to exit or ctx to end.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	loops := make([]*Loop, 0, len(m.loops))
	for _, s := range m.loops {
		loops = append(loops, s.loop)
	}
	m.mu.Unlock()

	m.Close()
	for _, l := range loops {
		select {
		case <-l.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) refresh(eventID string) {
	m.mu.Lock()
	s, ok := m.loops[eventID]
	m.mu.Unlock()
	if ok {
		s.loop.Refresh()
	}
}

func (m *Manager) unsubscribe(eventID, subID string) {
	m.mu.Lock()
	s, ok := m.loops[eventID]
	if !ok {
		m.mu.Unlock()
		return
	}
	s.mu.Lock()
	delete(s.subs, subID)
	empty := len(s.subs) == 0
	s.mu.Unlock()
	if empty {
		delete(m.loops, eventID)
	}
	m.mu.Unlock()

	if empty {
		s.loop.Stop()
		logging.Info(m.cfg.Logger, "live poll stopped", slog.String(logging.FieldEventID, eventID))
	}
}

func (m *Manager) broadcast(s *shared, u Update) {
	s.mu.Lock()
	if u.Event != nil {
		keep := u
		s.last = &keep
	}
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		if fn != nil {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(u)
	}
	if m.cfg.OnUpdate != nil {
		m.cfg.OnUpdate(u)
	}
}
