package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	organizer = domain.Principal{UserID: "org-1", Role: domain.RoleOrganizer}
	attendee  = domain.Principal{UserID: "user-1", Role: domain.RoleAttendee}
)

// newRequest builds a request with path values and, when p is non-nil, an authenticated principal.
func newRequest(method, target, body string, p *domain.Principal, pathValues ...string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if p != nil {
		req = req.WithContext(domain.WithPrincipal(req.Context(), *p))
	}
	return req
}

// decodeData decodes the envelope in rr and returns its data as T.
func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data  T                 `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.Nil(t, env.Error)
	return env.Data
}

// decodeErrorCode decodes an error envelope and returns its code.
func decodeErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env.Error.Code
}

// fakeGate implements domain.AdminGate, rejecting non-organizers like the real gate.
type fakeGate struct {
	err              error
	lastPrincipal    domain.Principal
	lastEventID      string
	lastItemID       string
	lastItem         *domain.AgendaItem
	lastPatch        *domain.AgendaItemPatch
	lastCurrent      *string
	lastSessionizeID string
	lastImport       []*domain.AgendaItem
	created          int
	calls            int
}

func (g *fakeGate) check(p domain.Principal) error {
	g.calls++
	g.lastPrincipal = p
	if !p.IsOrganizer() {
		return domain.ErrForbidden
	}
	return g.err
}

func (g *fakeGate) CreateEvent(ctx context.Context, p domain.Principal, event *domain.Event) error {
	if err := g.check(p); err != nil {
		return err
	}
	event.ID = "ev-new"
	return nil
}

func (g *fakeGate) CreateItem(ctx context.Context, p domain.Principal, eventID string, item *domain.AgendaItem) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.lastEventID = eventID
	g.lastItem = item
	item.ID = "item-new"
	item.EventID = eventID
	item.Version = 1
	return nil
}

func (g *fakeGate) UpdateItem(ctx context.Context, p domain.Principal, itemID string, patch *domain.AgendaItemPatch) (*domain.AgendaItem, error) {
	if err := g.check(p); err != nil {
		return nil, err
	}
	g.lastItemID = itemID
	g.lastPatch = patch
	item := &domain.AgendaItem{ID: itemID, Title: "Updated", Version: 2}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	return item, nil
}

func (g *fakeGate) DeleteItem(ctx context.Context, p domain.Principal, itemID string) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.lastItemID = itemID
	return nil
}

func (g *fakeGate) SetCurrent(ctx context.Context, p domain.Principal, eventID string, itemID *string) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.lastEventID = eventID
	g.lastCurrent = itemID
	return nil
}

func (g *fakeGate) ImportSessionize(ctx context.Context, p domain.Principal, eventID, sessionizeID string) (int, error) {
	if err := g.check(p); err != nil {
		return 0, err
	}
	g.lastEventID = eventID
	g.lastSessionizeID = sessionizeID
	return g.created, nil
}

func (g *fakeGate) ImportItems(ctx context.Context, p domain.Principal, eventID string, items []*domain.AgendaItem) (int, error) {
	if err := g.check(p); err != nil {
		return 0, err
	}
	g.lastEventID = eventID
	g.lastImport = items
	return len(items), nil
}

// fakeAgendaService implements domain.AgendaService reads.
type fakeAgendaService struct {
	items map[string]*domain.AgendaItem
	snaps map[string]*domain.AgendaSnapshot
	err   error
}

func (f *fakeAgendaService) CreateItem(ctx context.Context, eventID, actorID string, item *domain.AgendaItem) error {
	return nil
}

func (f *fakeAgendaService) UpdateItem(ctx context.Context, itemID, actorID string, patch *domain.AgendaItemPatch) (*domain.AgendaItem, error) {
	return nil, nil
}

func (f *fakeAgendaService) DeleteItem(ctx context.Context, itemID string) error { return nil }

func (f *fakeAgendaService) GetItem(ctx context.Context, itemID string) (*domain.AgendaItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if item, ok := f.items[itemID]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAgendaService) ListItems(ctx context.Context, eventID string) ([]*domain.AgendaItem, error) {
	return nil, nil
}

func (f *fakeAgendaService) GetAgenda(ctx context.Context, eventID string) (*domain.AgendaSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if snap, ok := f.snaps[eventID]; ok {
		return snap, nil
	}
	return nil, domain.ErrNotFound
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	events map[string]*domain.Event
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error { return nil }

func (f *fakeEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if e, ok := f.events[eventID]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

// fakeLiveService implements domain.LiveItemService.
type fakeLiveService struct {
	current map[string]*string
}

func (f *fakeLiveService) SetCurrent(ctx context.Context, eventID string, itemID *string) error {
	return nil
}

func (f *fakeLiveService) GetCurrent(ctx context.Context, eventID string) (*string, error) {
	cur, ok := f.current[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cur, nil
}

// fakeSelectionService implements domain.SelectionService.
type fakeSelectionService struct {
	err        error
	picks      map[string]string // groupID -> itemID for every user
	lastUserID string
	lastItemID string
	lastGroup  string
	lastEvent  string
}

func (f *fakeSelectionService) Select(ctx context.Context, itemID, userID, groupID string) (*domain.AgendaItem, error) {
	f.lastItemID, f.lastUserID, f.lastGroup = itemID, userID, groupID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AgendaItem{ID: itemID, AttendeeSelections: []string{userID}}, nil
}

func (f *fakeSelectionService) Deselect(ctx context.Context, itemID, userID, groupID string) error {
	f.lastItemID, f.lastUserID, f.lastGroup = itemID, userID, groupID
	return f.err
}

func (f *fakeSelectionService) GetSelection(ctx context.Context, eventID, groupID, userID string) (string, bool, error) {
	f.lastEvent, f.lastUserID, f.lastGroup = eventID, userID, groupID
	if f.err != nil {
		return "", false, f.err
	}
	id, ok := f.picks[groupID]
	return id, ok, nil
}
