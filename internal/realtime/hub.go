// Package realtime pushes full agenda snapshots to live subscribers whenever an
// event's agenda changes.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"eventagenda/internal/domain"
)

// Hub fans agenda changes out to per-event subscribers. It implements
// domain.ChangeNotifier. Every subscriber gets its own delivery goroutine and a
// one-slot signal, so a slow subscriber only ever skips intermediate states.
type Hub struct {
	loader      domain.SnapshotLoader
	logger      *slog.Logger
	loadTimeout time.Duration

	mu     sync.Mutex
	topics map[string]*topic
}

type topic struct {
	eventID string
	seq     atomic.Uint64
	subs    map[string]*Subscription

	memoMu  sync.Mutex
	memoSeq uint64
	memo    *domain.AgendaSnapshot
}

// Subscription is the handle returned by Subscribe. Close it to stop delivery.
type Subscription struct {
	ID      string
	EventID string

	hub        *Hub
	topic      *topic
	onSnapshot func(*domain.AgendaSnapshot)
	signal     chan struct{}
	done       chan struct{}
	once       sync.Once
}

func NewHub(loader domain.SnapshotLoader, logger *slog.Logger, loadTimeout time.Duration) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if loadTimeout <= 0 {
		loadTimeout = 5 * time.Second
	}
	return &Hub{
		loader:      loader,
		logger:      logger,
		loadTimeout: loadTimeout,
		topics:      make(map[string]*topic),
	}
}

// Subscribe registers onSnapshot for eventID and delivers the current snapshot
// before returning. Later changes trigger a fresh snapshot on the subscriber's
// own goroutine. onSnapshot is never called concurrently for one subscription.
// Snapshots are shared between subscribers and must be treated as read-only.
func (h *Hub) Subscribe(ctx context.Context, eventID string, onSnapshot func(*domain.AgendaSnapshot)) (*Subscription, error) {
	h.mu.Lock()
	t, ok := h.topics[eventID]
	if !ok {
		t = &topic{eventID: eventID, subs: make(map[string]*Subscription)}
		h.topics[eventID] = t
	}
	sub := &Subscription{
		ID:         uuid.NewString(),
		EventID:    eventID,
		hub:        h,
		topic:      t,
		onSnapshot: onSnapshot,
		signal:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	// Registered before the first load so a change racing with it is not lost.
	t.subs[sub.ID] = sub
	h.mu.Unlock()

	initial, err := h.snapshot(ctx, t)
	if err != nil {
		sub.Close()
		return nil, err
	}
	onSnapshot(initial)
	go sub.run()

	h.logger.DebugContext(ctx, "agenda subscriber added", "event_id", eventID, "subscription_id", sub.ID)
	return sub, nil
}

// Unsubscribe stops delivery to sub. It is safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub != nil {
		sub.Close()
	}
}

// Notify marks the event's snapshot stale and wakes every subscriber.
func (h *Hub) Notify(ctx context.Context, change domain.ChangeEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.topics[change.EventID]
	if !ok {
		return nil
	}
	t.seq.Add(1)
	for _, sub := range t.subs {
		select {
		case sub.signal <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribers returns the number of live subscriptions for eventID.
func (h *Hub) Subscribers(eventID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[eventID]; ok {
		return len(t.subs)
	}
	return 0
}

// Close stops every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	var subs []*Subscription
	for _, t := range h.topics {
		for _, s := range t.subs {
			subs = append(subs, s)
		}
	}
	h.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}

// snapshot returns the topic's snapshot for the current change sequence,
// loading it at most once per sequence no matter how many subscribers ask.
func (h *Hub) snapshot(ctx context.Context, t *topic) (*domain.AgendaSnapshot, error) {
	t.memoMu.Lock()
	defer t.memoMu.Unlock()
	seq := t.seq.Load()
	if t.memo != nil && t.memoSeq == seq {
		return t.memo, nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.loadTimeout)
	defer cancel()
	snap, err := h.loader.GetAgenda(ctx, t.eventID)
	if err != nil {
		return nil, err
	}
	t.memo = snap
	t.memoSeq = seq
	return snap, nil
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.topics[sub.EventID]
	if !ok {
		return
	}
	delete(t.subs, sub.ID)
	if len(t.subs) == 0 && t == sub.topic {
		delete(h.topics, sub.EventID)
	}
}

func (s *Subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
		}
		snap, err := s.hub.snapshot(context.Background(), s.topic)
		if err != nil {
			// Keep the subscription; the next change retries the load.
			s.hub.logger.Warn("agenda snapshot load failed", "event_id", s.EventID, "subscription_id", s.ID, "err", err)
			continue
		}
		select {
		case <-s.done:
			return
		default:
		}
		s.onSnapshot(snap)
	}
}

// Done is closed once the subscription has been closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. Safe to call more than once and from onSnapshot.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}
