package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventagenda/internal/domain"
)

type agendaService struct {
	base
}

// NewAgendaService returns the agenda store service.
func NewAgendaService(d Deps) domain.AgendaService {
	return &agendaService{base{d.withDefaults()}}
}

// validateNewItem checks required fields and normalizes the category in place.
func validateNewItem(item *domain.AgendaItem) error {
	var missing []string
	if strings.TrimSpace(item.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(item.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(item.StartTime) == "" {
		missing = append(missing, "start_time")
	}
	if strings.TrimSpace(item.EndTime) == "" {
		missing = append(missing, "end_time")
	}
	if item.Category == "" && item.IsBreak {
		item.Category = domain.CategoryBreak
	}
	category, ok := domain.ParseCategory(string(item.Category))
	if !ok {
		missing = append(missing, "category")
	}
	item.Category = category
	if item.Category == domain.CategoryBreak {
		item.IsBreak = true
	}
	// A new item either has no ceiling (nil) or a positive one; 0 only means
	// "remove the ceiling" on a patch.
	if item.MaxAttendees != nil && *item.MaxAttendees <= 0 {
		missing = append(missing, "max_attendees")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

func validatePatch(p *domain.AgendaItemPatch) error {
	var bad []string
	required := []struct {
		name string
		val  *string
	}{
		{"title", p.Title}, {"date", p.Date}, {"start_time", p.StartTime}, {"end_time", p.EndTime},
	}
	for _, r := range required {
		if r.val != nil && strings.TrimSpace(*r.val) == "" {
			bad = append(bad, r.name)
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		bad = append(bad, "category")
	}
	if p.MaxAttendees != nil && *p.MaxAttendees < 0 {
		bad = append(bad, "max_attendees")
	}
	if len(bad) > 0 {
		return &domain.ValidationError{Fields: bad}
	}
	return nil
}

func (s *agendaService) CreateItem(ctx context.Context, eventID, actorID string, item *domain.AgendaItem) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if err := validateNewItem(item); err != nil {
		return err
	}
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}

	now := time.Now().UTC()
	item.EventID = eventID
	item.CreatedAt = now
	item.UpdatedAt = now
	item.CreatedBy = actorID
	item.LastEditedBy = actorID
	item.Version = 1
	item.AttendeeSelections = []string{}
	if item.SpeakerImages == nil {
		item.SpeakerImages = []string{}
	}
	if item.SimultaneousGroupID != nil && *item.SimultaneousGroupID == "" {
		item.SimultaneousGroupID = nil
	}

	if err := s.Retry.Do(ctx, func() error { return s.Items.Create(ctx, item) }); err != nil {
		return fmt.Errorf("create agenda item: %w", err)
	}

	s.touch(ctx, eventID, now)
	s.emit(ctx, domain.ChangeEvent{EventID: eventID, Kind: domain.ChangeItem, ItemID: item.ID, At: now})
	return nil
}

func (s *agendaService) UpdateItem(ctx context.Context, itemID, actorID string, patch *domain.AgendaItemPatch) (*domain.AgendaItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if patch == nil {
		patch = &domain.AgendaItemPatch{}
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	before, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != before.Version {
			return nil, domain.ErrVersionConflict
		}
		return s.withSelections(ctx, before)
	}

	now := time.Now().UTC()
	var updated *domain.AgendaItem
	err = s.Retry.Do(ctx, func() error {
		var err error
		updated, err = s.Items.Update(ctx, itemID, patch, actorID, now)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update agenda item: %w", err)
	}

	if before.GroupKey() != updated.GroupKey() {
		// The item left its old group; its selections there no longer mean anything.
		s.dropSelections(ctx, before)
		s.emit(ctx, domain.ChangeEvent{EventID: before.EventID, Kind: domain.ChangeSelection, ItemID: itemID, GroupID: before.GroupID(), At: now})
	}
	s.touch(ctx, updated.EventID, now)
	s.emit(ctx, domain.ChangeEvent{EventID: updated.EventID, Kind: domain.ChangeItem, ItemID: itemID, At: now})
	return s.withSelections(ctx, updated)
}

func (s *agendaService) DeleteItem(ctx context.Context, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	event, err := s.getEvent(ctx, item.EventID)
	if err != nil {
		return err
	}
	wasCurrent := event.CurrentAgendaItemID != nil && *event.CurrentAgendaItemID == itemID

	if err := s.Retry.Do(ctx, func() error { return s.Items.Delete(ctx, itemID) }); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete agenda item: %w", err)
	}

	now := time.Now().UTC()
	s.dropSelections(ctx, item)

	var cleared bool
	err = s.Retry.Do(ctx, func() error {
		var err error
		cleared, err = s.Events.ClearCurrentAgendaItemIf(ctx, item.EventID, itemID, now)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear current agenda item: %w", err)
	}
	if wasCurrent || cleared {
		s.emit(ctx, domain.ChangeEvent{EventID: item.EventID, Kind: domain.ChangeCurrentItem, At: now})
	}

	s.touch(ctx, item.EventID, now)
	s.emit(ctx, domain.ChangeEvent{EventID: item.EventID, Kind: domain.ChangeItem, ItemID: itemID, At: now})
	return nil
}

func (s *agendaService) GetItem(ctx context.Context, itemID string) (*domain.AgendaItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.withSelections(ctx, item)
}

func (s *agendaService) withSelections(ctx context.Context, item *domain.AgendaItem) (*domain.AgendaItem, error) {
	var group *domain.SelectionGroup
	err := s.Retry.Do(ctx, func() error {
		var err error
		group, err = s.Selections.Get(ctx, item.GroupKey())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get selections: %w", err)
	}
	item.AttendeeSelections = group.Members(item.ID)
	return item, nil
}

func (s *agendaService) ListItems(ctx context.Context, eventID string) ([]*domain.AgendaItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.listItems(ctx, eventID)
}

func (s *agendaService) listItems(ctx context.Context, eventID string) ([]*domain.AgendaItem, error) {
	var items []*domain.AgendaItem
	err := s.Retry.Do(ctx, func() error {
		var err error
		items, err = s.Items.ListByEventID(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}
	var groups []*domain.SelectionGroup
	err = s.Retry.Do(ctx, func() error {
		var err error
		groups, err = s.Selections.ListByEventID(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	byKey := make(map[string]*domain.SelectionGroup, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g
	}
	for _, item := range items {
		if g, ok := byKey[item.GroupKey()]; ok {
			item.AttendeeSelections = g.Members(item.ID)
		} else {
			item.AttendeeSelections = []string{}
		}
	}
	if items == nil {
		items = []*domain.AgendaItem{}
	}
	return items, nil
}

func (s *agendaService) GetAgenda(ctx context.Context, eventID string) (*domain.AgendaSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	items, err := s.listItems(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.AgendaSnapshot{
		EventID:             eventID,
		Days:                OrderAgenda(items),
		CurrentAgendaItemID: event.CurrentAgendaItemID,
		Groups:              summarizeGroups(items),
		AgendaLastUpdated:   event.AgendaLastUpdated,
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

func summarizeGroups(items []*domain.AgendaItem) []domain.GroupSummary {
	byGroup := make(map[string]map[string]int)
	for _, item := range items {
		if item.SimultaneousGroupID == nil {
			continue
		}
		gid := *item.SimultaneousGroupID
		if byGroup[gid] == nil {
			byGroup[gid] = make(map[string]int)
		}
		byGroup[gid][item.ID] = len(item.AttendeeSelections)
	}
	out := make([]domain.GroupSummary, 0, len(byGroup))
	for gid, counts := range byGroup {
		out = append(out, domain.GroupSummary{GroupID: gid, Counts: counts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out
}
