package domain

import (
	"context"
	"strings"
	"time"
)

// Category is the closed set of agenda item kinds.
type Category string

const (
	CategoryKeynote      Category = "keynote"
	CategoryPresentation Category = "presentation"
	CategoryPanel        Category = "panel"
	CategoryWorkshop     Category = "workshop"
	CategoryNetworking   Category = "networking"
	CategoryBreak        Category = "break"
	CategoryOther        Category = "other"
)

var categories = map[Category]struct{}{
	CategoryKeynote:      {},
	CategoryPresentation: {},
	CategoryPanel:        {},
	CategoryWorkshop:     {},
	CategoryNetworking:   {},
	CategoryBreak:        {},
	CategoryOther:        {},
}

// ParseCategory normalizes s into a Category. Empty input is CategoryOther;
// anything outside the closed set is rejected.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryOther, true
	}
	_, ok := categories[c]
	return c, ok
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// AgendaItem is one scheduled slot in an event's program.
// AttendeeSelections is derived from the item's selection group record and is
// never written through the item itself.
// swagger:model AgendaItem
type AgendaItem struct {
	ID                  string    `json:"id"`
	EventID             string    `json:"event_id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description,omitempty"`
	Date                string    `json:"date"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	Speaker             *string   `json:"speaker,omitempty"`
	SpeakerBio          *string   `json:"speaker_bio,omitempty"`
	SpeakerImages       []string  `json:"speaker_images"`
	Location            *string   `json:"location,omitempty"`
	Category            Category  `json:"category"`
	IsBreak             bool      `json:"is_break"`
	Order               int       `json:"order"`
	SimultaneousGroupID *string   `json:"simultaneous_group_id,omitempty"`
	AttendeeSelections  []string  `json:"attendee_selections"`
	MaxAttendees        *int      `json:"max_attendees,omitempty"`
	Version             int       `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	CreatedBy           string    `json:"created_by"`
	LastEditedBy        string    `json:"last_edited_by"`
}

// GroupKey returns the key of the selection record that governs this item.
// Ungrouped items get a private record so they can still be selected.
func (i *AgendaItem) GroupKey() string {
	return SelectionGroupKey(i.EventID, i.ID, i.GroupID())
}

// GroupID returns the simultaneous group id, or "" for an ungrouped item.
func (i *AgendaItem) GroupID() string {
	if i.SimultaneousGroupID == nil {
		return ""
	}
	return *i.SimultaneousGroupID
}

// InGroup reports whether the item belongs to groupID. An empty groupID matches only ungrouped items.
func (i *AgendaItem) InGroup(groupID string) bool {
	return i.GroupID() == groupID
}

// AtCapacity reports whether count selections fill the item's ceiling.
func (i *AgendaItem) AtCapacity(count int) bool {
	return i.MaxAttendees != nil && count >= *i.MaxAttendees
}

// AgendaItemPatch carries a partial update. Nil fields are left unchanged.
// For optional text fields an empty string clears the value; MaxAttendees 0 removes the ceiling.
type AgendaItemPatch struct {
	Title               *string
	Description         *string
	Date                *string
	StartTime           *string
	EndTime             *string
	Speaker             *string
	SpeakerBio          *string
	SpeakerImages       *[]string
	Location            *string
	Category            *Category
	IsBreak             *bool
	Order               *int
	SimultaneousGroupID *string
	MaxAttendees        *int
	// ExpectedVersion, when set, makes the update fail with ErrVersionConflict
	// if the stored version differs.
	ExpectedVersion *int
}

// Empty reports whether the patch changes nothing.
func (p *AgendaItemPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.StartTime == nil &&
		p.EndTime == nil && p.Speaker == nil && p.SpeakerBio == nil && p.SpeakerImages == nil &&
		p.Location == nil && p.Category == nil && p.IsBreak == nil && p.Order == nil &&
		p.SimultaneousGroupID == nil && p.MaxAttendees == nil
}

// AgendaDay is one date bucket of the ordered agenda view.
type AgendaDay struct {
	Date  string        `json:"date"`
	Items []*AgendaItem `json:"items"`
}

// AgendaItemRepository defines the interface for agenda item storage
type AgendaItemRepository interface {
	Create(ctx context.Context, item *AgendaItem) error
	GetByID(ctx context.Context, id string) (*AgendaItem, error)
	ListByEventID(ctx context.Context, eventID string) ([]*AgendaItem, error)
	Update(ctx context.Context, id string, patch *AgendaItemPatch, editedBy string, at time.Time) (*AgendaItem, error)
	Delete(ctx context.Context, id string) error
}

// AgendaService is the agenda store: item CRUD plus the read model consumed by renderers.
type AgendaService interface {
	CreateItem(ctx context.Context, eventID, actorID string, item *AgendaItem) error
	UpdateItem(ctx context.Context, itemID, actorID string, patch *AgendaItemPatch) (*AgendaItem, error)
	DeleteItem(ctx context.Context, itemID string) error
	GetItem(ctx context.Context, itemID string) (*AgendaItem, error)
	ListItems(ctx context.Context, eventID string) ([]*AgendaItem, error)
	GetAgenda(ctx context.Context, eventID string) (*AgendaSnapshot, error)
}
