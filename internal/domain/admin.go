package domain

import "context"

// AdminGate exposes the organizer-only operations. Every method fails with
// ErrForbidden before touching storage when the principal is not an organizer.
type AdminGate interface {
	CreateEvent(ctx context.Context, p Principal, event *Event) error
	CreateItem(ctx context.Context, p Principal, eventID string, item *AgendaItem) error
	UpdateItem(ctx context.Context, p Principal, itemID string, patch *AgendaItemPatch) (*AgendaItem, error)
	DeleteItem(ctx context.Context, p Principal, itemID string) error
	SetCurrent(ctx context.Context, p Principal, eventID string, itemID *string) error
	ImportSessionize(ctx context.Context, p Principal, eventID, sessionizeID string) (int, error)
	ImportItems(ctx context.Context, p Principal, eventID string, items []*AgendaItem) (int, error)
}
