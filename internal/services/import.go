package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventagenda/internal/domain"
)

type importService struct {
	agenda         domain.AgendaService
	sf             domain.SessionFetcher
	contextTimeout time.Duration
}

// NewImportService returns the importer that turns external schedules into agenda items.
// Items go through the agenda service, so validation and change events apply.
func NewImportService(agenda domain.AgendaService, sessionFetcher domain.SessionFetcher, timeout time.Duration) domain.AgendaImportService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &importService{
		agenda:         agenda,
		sf:             sessionFetcher,
		contextTimeout: timeout,
	}
}

func importKey(date, start, title string) string {
	return date + "|" + start + "|" + strings.ToLower(strings.TrimSpace(title))
}

// slotGroupID names the simultaneous group of every session starting at t.
func slotGroupID(t time.Time) string {
	return "slot-" + t.Format("2006-01-02-1504")
}

func (s *importService) ImportSessionize(ctx context.Context, eventID, actorID, sessionizeID string) (int, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	data, err := s.sf.Fetch(fetchCtx, sessionizeID)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("fetch sessionize schedule: %w", err)
	}

	rooms := make(map[int]domain.SessionFetcherRoom, len(data.Rooms))
	for _, r := range data.Rooms {
		rooms[r.ID] = r
	}
	speakers := make(map[string]domain.SessionFetcherSpeaker, len(data.Speakers))
	for _, sp := range data.Speakers {
		speakers[sp.ID] = sp
	}

	// Regular sessions sharing a start instant run in parallel rooms.
	parallel := make(map[string]int)
	for _, sess := range data.Sessions {
		if !sess.IsServiceSession && !sess.IsPlenumSession {
			parallel[slotGroupID(sess.StartsAt.Time)]++
		}
	}

	sessions := append([]domain.SessionFetcherSession(nil), data.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartsAt.Equal(sessions[j].StartsAt.Time) {
			return sessions[i].StartsAt.Before(sessions[j].StartsAt.Time)
		}
		return rooms[sessions[i].RoomID].Sort < rooms[sessions[j].RoomID].Sort
	})

	items := make([]*domain.AgendaItem, 0, len(sessions))
	for _, sess := range sessions {
		item := &domain.AgendaItem{
			Title:         sess.Title,
			Date:          sess.StartsAt.Format("2006-01-02"),
			StartTime:     sess.StartsAt.Format("15:04"),
			EndTime:       sess.EndsAt.Format("15:04"),
			Category:      domain.CategoryPresentation,
			Order:         rooms[sess.RoomID].Sort,
			SpeakerImages: []string{},
		}
		if sess.Description != "" {
			desc := sess.Description
			item.Description = &desc
		}
		if room, ok := rooms[sess.RoomID]; ok && room.Name != "" {
			name := room.Name
			item.Location = &name
		}
		var names, bios []string
		for _, id := range sess.Speakers {
			sp, ok := speakers[id]
			if !ok {
				continue
			}
			names = append(names, sp.FullName)
			if sp.Bio != "" {
				bios = append(bios, sp.Bio)
			}
			if sp.ProfilePicture != "" {
				item.SpeakerImages = append(item.SpeakerImages, sp.ProfilePicture)
			}
		}
		if len(names) > 0 {
			joined := strings.Join(names, ", ")
			item.Speaker = &joined
		}
		if len(bios) > 0 {
			joined := strings.Join(bios, "\n\n")
			item.SpeakerBio = &joined
		}
		switch {
		case sess.IsServiceSession:
			item.Category = domain.CategoryBreak
			item.IsBreak = true
		case sess.IsPlenumSession:
			item.Category = domain.CategoryKeynote
		default:
			if gid := slotGroupID(sess.StartsAt.Time); parallel[gid] > 1 {
				item.SimultaneousGroupID = &gid
			}
		}
		items = append(items, item)
	}

	return s.ImportItems(ctx, eventID, actorID, items)
}

// ImportItems validates every item before creating any, then creates the ones
// not already on the agenda (same date, start time and title).
func (s *importService) ImportItems(ctx context.Context, eventID, actorID string, items []*domain.AgendaItem) (int, error) {
	for i, item := range items {
		if err := validateNewItem(item); err != nil {
			return 0, fmt.Errorf("item %d (%q): %w", i, item.Title, err)
		}
	}

	existing, err := s.agenda.ListItems(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("list existing agenda: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[importKey(item.Date, item.StartTime, item.Title)] = struct{}{}
	}

	created := 0
	for _, item := range items {
		key := importKey(item.Date, item.StartTime, item.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		if err := s.agenda.CreateItem(ctx, eventID, actorID, item); err != nil {
			return created, fmt.Errorf("failed to create agenda item %s: %w", item.Title, err)
		}
		seen[key] = struct{}{}
		created++
	}
	return created, nil
}
