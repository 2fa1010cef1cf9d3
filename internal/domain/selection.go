package domain

import (
	"context"
	"sort"
	"time"
)

const soloGroupPrefix = "item:"

// SelectionGroupKey names the coordination record for an item. Grouped items
// of one event share "<eventID>:<groupID>", so equal group ids in different
// events never meet; an ungrouped item gets "item:<id>".
func SelectionGroupKey(eventID, itemID, groupID string) string {
	if groupID != "" {
		return eventID + ":" + groupID
	}
	return soloGroupPrefix + itemID
}

// SelectionGroup is the single coordination record of a simultaneous group.
// Selections maps user id to the one item that user picked, so a user can
// never hold two items of the same group.
type SelectionGroup struct {
	Key        string            `json:"key"`
	EventID    string            `json:"event_id"`
	Selections map[string]string `json:"selections"`
	Version    int               `json:"version"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewSelectionGroup returns an empty record for key.
func NewSelectionGroup(key, eventID string) *SelectionGroup {
	return &SelectionGroup{
		Key:        key,
		EventID:    eventID,
		Selections: make(map[string]string),
	}
}

// Count returns how many users currently hold itemID.
func (g *SelectionGroup) Count(itemID string) int {
	n := 0
	for _, id := range g.Selections {
		if id == itemID {
			n++
		}
	}
	return n
}

// Members returns the sorted user ids holding itemID.
func (g *SelectionGroup) Members(itemID string) []string {
	out := []string{}
	for userID, id := range g.Selections {
		if id == itemID {
			out = append(out, userID)
		}
	}
	sort.Strings(out)
	return out
}

// Assign moves userID onto item, releasing any sibling the user held.
// It fails with ErrCapacityExceeded, leaving the record untouched, when the
// item is full and the user is not already on it.
func (g *SelectionGroup) Assign(item *AgendaItem, userID string) error {
	if g.Selections == nil {
		g.Selections = make(map[string]string)
	}
	if g.Selections[userID] == item.ID {
		return nil
	}
	if item.AtCapacity(g.Count(item.ID)) {
		return ErrCapacityExceeded
	}
	g.Selections[userID] = item.ID
	return nil
}

// Release removes userID's selection if it points at itemID.
func (g *SelectionGroup) Release(userID, itemID string) bool {
	if g.Selections[userID] != itemID {
		return false
	}
	delete(g.Selections, userID)
	return true
}

// DropItem removes every selection of itemID and returns how many were removed.
func (g *SelectionGroup) DropItem(itemID string) int {
	n := 0
	for userID, id := range g.Selections {
		if id == itemID {
			delete(g.Selections, userID)
			n++
		}
	}
	return n
}

// SelectionRepository stores selection group records.
type SelectionRepository interface {
	// Mutate loads the record for key (an empty one if missing), applies fn and
	// persists the result in one atomic read-modify-write. If fn returns an
	// error nothing is written and that error is returned.
	Mutate(ctx context.Context, key, eventID string, fn func(g *SelectionGroup) error) (*SelectionGroup, error)
	// Get returns the record for key, or an empty record if none exists.
	Get(ctx context.Context, key string) (*SelectionGroup, error)
	ListByEventID(ctx context.Context, eventID string) ([]*SelectionGroup, error)
}

// SelectionService is the attendee-facing selection coordinator.
type SelectionService interface {
	// Select records userID's choice of itemID within groupID. Returns the target item with refreshed selections.
	Select(ctx context.Context, itemID, userID, groupID string) (*AgendaItem, error)
	Deselect(ctx context.Context, itemID, userID, groupID string) error
	// GetSelection returns the item userID picked in eventID's groupID; found is false when there is none.
	GetSelection(ctx context.Context, eventID, groupID, userID string) (itemID string, found bool, err error)
}
