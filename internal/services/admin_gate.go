package services

import (
	"context"

	"eventagenda/internal/domain"
)

type adminGate struct {
	events  domain.EventService
	agenda  domain.AgendaService
	live    domain.LiveItemService
	imports domain.AgendaImportService
}

// NewAdminGate wraps the organizer-only operations behind a role check.
func NewAdminGate(events domain.EventService, agenda domain.AgendaService, live domain.LiveItemService, imports domain.AgendaImportService) domain.AdminGate {
	return &adminGate{events: events, agenda: agenda, live: live, imports: imports}
}

func authorize(p domain.Principal) error {
	if p.UserID == "" || !p.IsOrganizer() {
		return domain.ErrForbidden
	}
	return nil
}

func (g *adminGate) CreateEvent(ctx context.Context, p domain.Principal, event *domain.Event) error {
	if err := authorize(p); err != nil {
		return err
	}
	event.OwnerID = p.UserID
	return g.events.CreateEvent(ctx, event)
}

func (g *adminGate) CreateItem(ctx context.Context, p domain.Principal, eventID string, item *domain.AgendaItem) error {
	if err := authorize(p); err != nil {
		return err
	}
	return g.agenda.CreateItem(ctx, eventID, p.UserID, item)
}

func (g *adminGate) UpdateItem(ctx context.Context, p domain.Principal, itemID string, patch *domain.AgendaItemPatch) (*domain.AgendaItem, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	return g.agenda.UpdateItem(ctx, itemID, p.UserID, patch)
}

func (g *adminGate) DeleteItem(ctx context.Context, p domain.Principal, itemID string) error {
	if err := authorize(p); err != nil {
		return err
	}
	return g.agenda.DeleteItem(ctx, itemID)
}

func (g *adminGate) SetCurrent(ctx context.Context, p domain.Principal, eventID string, itemID *string) error {
	if err := authorize(p); err != nil {
		return err
	}
	return g.live.SetCurrent(ctx, eventID, itemID)
}

func (g *adminGate) ImportSessionize(ctx context.Context, p domain.Principal, eventID, sessionizeID string) (int, error) {
	if err := authorize(p); err != nil {
		return 0, err
	}
	return g.imports.ImportSessionize(ctx, eventID, p.UserID, sessionizeID)
}

func (g *adminGate) ImportItems(ctx context.Context, p domain.Principal, eventID string, items []*domain.AgendaItem) (int, error) {
	if err := authorize(p); err != nil {
		return 0, err
	}
	return g.imports.ImportItems(ctx, eventID, p.UserID, items)
}
