package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventagenda/internal/domain"
)

// Deps bundles the repositories and ports shared by the agenda services.
type Deps struct {
	Events     domain.EventRepository
	Items      domain.AgendaItemRepository
	Selections domain.SelectionRepository
	Notifier   domain.ChangeNotifier
	Logger     *slog.Logger
	Retry      RetryPolicy
	Timeout    time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	if d.Retry.Attempts == 0 {
		d.Retry = DefaultRetryPolicy()
	}
	if d.Notifier == nil {
		d.Notifier = domain.MultiNotifier(nil)
	}
	return d
}

// base carries the helpers every agenda service uses: event lookup, the
// agenda timestamp bump and change emission.
type base struct {
	Deps
}

func (b *base) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	var event *domain.Event
	err := b.Retry.Do(ctx, func() error {
		var err error
		event, err = b.Events.GetByID(ctx, eventID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (b *base) getItem(ctx context.Context, itemID string) (*domain.AgendaItem, error) {
	var item *domain.AgendaItem
	err := b.Retry.Do(ctx, func() error {
		var err error
		item, err = b.Items.GetByID(ctx, itemID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get agenda item: %w", err)
	}
	return item, nil
}

// touch bumps agenda_last_updated. The mutation already succeeded, so a
// failure here is logged rather than returned.
func (b *base) touch(ctx context.Context, eventID string, at time.Time) {
	err := b.Retry.Do(ctx, func() error { return b.Events.TouchAgenda(ctx, eventID, at) })
	if err != nil {
		b.Logger.WarnContext(ctx, "bump agenda_last_updated failed", "event_id", eventID, "err", err)
	}
}

// dropSelections removes every selection of item from its group record.
// Stale entries are harmless to readers, so a failure is only logged.
func (b *base) dropSelections(ctx context.Context, item *domain.AgendaItem) {
	err := b.Retry.Do(ctx, func() error {
		_, err := b.Selections.Mutate(ctx, item.GroupKey(), item.EventID, func(g *domain.SelectionGroup) error {
			g.DropItem(item.ID)
			return nil
		})
		return err
	})
	if err != nil {
		b.Logger.WarnContext(ctx, "drop selections failed", "item_id", item.ID, "group", item.GroupKey(), "err", err)
	}
}

func (b *base) emit(ctx context.Context, change domain.ChangeEvent) {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	if err := b.Notifier.Notify(ctx, change); err != nil {
		b.Logger.WarnContext(ctx, "change notification failed",
			"event_id", change.EventID, "kind", change.Kind, "err", err)
	}
}

type eventService struct {
	base
}

// NewEventService returns the EventService backed by the given dependencies.
func NewEventService(d Deps) domain.EventService {
	return &eventService{base{d.withDefaults()}}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if event.OwnerID == "" {
		return &domain.ValidationError{Fields: []string{"owner_id"}}
	}
	if event.Name == "" {
		return &domain.ValidationError{Fields: []string{"name"}}
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.AgendaLastUpdated = now
	event.CurrentAgendaItemID = nil

	if err := s.Retry.Do(ctx, func() error { return s.Events.Create(ctx, event) }); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.getEvent(ctx, eventID)
}
