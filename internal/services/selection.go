package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventagenda/internal/domain"
)

type selectionService struct {
	base
}

// NewSelectionService returns the coordinator for attendee selections.
func NewSelectionService(d Deps) domain.SelectionService {
	return &selectionService{base{d.withDefaults()}}
}

// Select validates the target, then moves userID onto it with a single atomic
// write of the group record. Validation failures write nothing.
func (s *selectionService) Select(ctx context.Context, itemID, userID, groupID string) (*domain.AgendaItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.InGroup(groupID) {
		return nil, domain.ErrGroupMismatch
	}

	var group *domain.SelectionGroup
	err = s.Retry.Do(ctx, func() error {
		var err error
		group, err = s.Selections.Mutate(ctx, item.GroupKey(), item.EventID, func(g *domain.SelectionGroup) error {
			return g.Assign(item, userID)
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) {
			return nil, domain.ErrCapacityExceeded
		}
		return nil, fmt.Errorf("select agenda item: %w", err)
	}

	// A DeleteItem that ran between the lookup and the write has already
	// dropped the group's selections, so take this one back out.
	if _, err := s.getItem(ctx, item.ID); errors.Is(err, domain.ErrNotFound) {
		s.dropSelections(ctx, item)
		return nil, domain.ErrNotFound
	} else if err != nil {
		s.Logger.WarnContext(ctx, "recheck selected item failed", "item_id", item.ID, "err", err)
	}

	item.AttendeeSelections = group.Members(item.ID)
	s.emit(ctx, domain.ChangeEvent{
		EventID: item.EventID,
		Kind:    domain.ChangeSelection,
		ItemID:  item.ID,
		GroupID: item.GroupID(),
		At:      time.Now().UTC(),
	})
	return item, nil
}

func (s *selectionService) Deselect(ctx context.Context, itemID, userID, groupID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if userID == "" {
		return domain.ErrInvalidInput
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.InGroup(groupID) {
		return domain.ErrGroupMismatch
	}

	var released bool
	err = s.Retry.Do(ctx, func() error {
		_, err := s.Selections.Mutate(ctx, item.GroupKey(), item.EventID, func(g *domain.SelectionGroup) error {
			released = g.Release(userID, item.ID)
			return nil
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("deselect agenda item: %w", err)
	}
	if released {
		s.emit(ctx, domain.ChangeEvent{
			EventID: item.EventID,
			Kind:    domain.ChangeSelection,
			ItemID:  item.ID,
			GroupID: item.GroupID(),
			At:      time.Now().UTC(),
		})
	}
	return nil
}

// GetSelection reads eventID's record for groupID. A selection pointing at an
// item that has since been deleted or moved is reported as no selection.
func (s *selectionService) GetSelection(ctx context.Context, eventID, groupID, userID string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if eventID == "" || groupID == "" || userID == "" {
		return "", false, domain.ErrInvalidInput
	}
	key := domain.SelectionGroupKey(eventID, "", groupID)
	var group *domain.SelectionGroup
	err := s.Retry.Do(ctx, func() error {
		var err error
		group, err = s.Selections.Get(ctx, key)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("get selection group: %w", err)
	}
	itemID, ok := group.Selections[userID]
	if !ok {
		return "", false, nil
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if item.EventID != eventID || !item.InGroup(groupID) {
		return "", false, nil
	}
	return itemID, true, nil
}
