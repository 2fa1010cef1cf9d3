package domain

import (
	"context"
	"time"
)

// GroupSummary reports how many selections each member item of a group holds.
type GroupSummary struct {
	GroupID string         `json:"group_id"`
	Counts  map[string]int `json:"counts"`
}

// AgendaSnapshot is a full, self-consistent view of one event's agenda.
// swagger:model AgendaSnapshot
type AgendaSnapshot struct {
	EventID             string         `json:"event_id"`
	Days                []AgendaDay    `json:"days"`
	CurrentAgendaItemID *string        `json:"current_agenda_item_id"`
	Groups              []GroupSummary `json:"groups"`
	AgendaLastUpdated   time.Time      `json:"agenda_last_updated"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// SelectionFor returns the item userID holds within groupID, if any.
func (s *AgendaSnapshot) SelectionFor(groupID, userID string) (string, bool) {
	for _, day := range s.Days {
		for _, item := range day.Items {
			if !item.InGroup(groupID) || groupID == "" {
				continue
			}
			for _, u := range item.AttendeeSelections {
				if u == userID {
					return item.ID, true
				}
			}
		}
	}
	return "", false
}

// SelectionsOf maps every group id to the item userID holds in it.
func (s *AgendaSnapshot) SelectionsOf(userID string) map[string]string {
	out := make(map[string]string)
	for _, day := range s.Days {
		for _, item := range day.Items {
			if item.SimultaneousGroupID == nil {
				continue
			}
			for _, u := range item.AttendeeSelections {
				if u == userID {
					out[*item.SimultaneousGroupID] = item.ID
				}
			}
		}
	}
	return out
}

// SnapshotLoader builds the current snapshot of an event.
type SnapshotLoader interface {
	GetAgenda(ctx context.Context, eventID string) (*AgendaSnapshot, error)
}

// LiveItemService tracks the single "happening now" item of each event.
type LiveItemService interface {
	SetCurrent(ctx context.Context, eventID string, itemID *string) error
	GetCurrent(ctx context.Context, eventID string) (*string, error)
}
