package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventagenda/internal/domain"
)

type liveItemService struct {
	base
}

// NewLiveItemService returns the tracker for each event's "happening now" pointer.
func NewLiveItemService(d Deps) domain.LiveItemService {
	return &liveItemService{base{d.withDefaults()}}
}

// SetCurrent points the event at itemID, or clears the pointer when itemID is nil.
// An item from another event is reported as ErrNotFound.
func (s *liveItemService) SetCurrent(ctx context.Context, eventID string, itemID *string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}
	if itemID != nil {
		item, err := s.getItem(ctx, *itemID)
		if err != nil {
			return err
		}
		if item.EventID != eventID {
			return domain.ErrNotFound
		}
	}

	now := time.Now().UTC()
	err := s.Retry.Do(ctx, func() error { return s.Events.SetCurrentAgendaItem(ctx, eventID, itemID, now) })
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set current agenda item: %w", err)
	}

	change := domain.ChangeEvent{EventID: eventID, Kind: domain.ChangeCurrentItem, At: now}
	if itemID != nil {
		change.ItemID = *itemID
	}
	s.emit(ctx, change)
	return nil
}

func (s *liveItemService) GetCurrent(ctx context.Context, eventID string) (*string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.CurrentAgendaItemID, nil
}
