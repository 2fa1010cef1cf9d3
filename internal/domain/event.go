package domain

import (
	"context"
	"time"
)

// Event is the conference event an agenda belongs to. Only the live pointer and
// the agenda timestamp are owned by the agenda service.
// swagger:model Event
type Event struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	OwnerID             string    `json:"owner_id"`
	CurrentAgendaItemID *string   `json:"current_agenda_item_id"`
	AgendaLastUpdated   time.Time `json:"agenda_last_updated"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:              name,
		OwnerID:           ownerID,
		AgendaLastUpdated: createdAt,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// SetCurrentAgendaItem writes the live pointer (nil clears it) and bumps agenda_last_updated.
	SetCurrentAgendaItem(ctx context.Context, eventID string, itemID *string, at time.Time) error
	// ClearCurrentAgendaItemIf clears the live pointer only when it points at itemID.
	// Returns whether a row was changed.
	ClearCurrentAgendaItemIf(ctx context.Context, eventID, itemID string, at time.Time) (bool, error)
	TouchAgenda(ctx context.Context, eventID string, at time.Time) error
}

// EventService defines event-level operations exposed to organizers.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
}
