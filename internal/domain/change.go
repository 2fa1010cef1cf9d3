package domain

import (
	"context"
	"time"
)

// ChangeKind classifies a successful agenda mutation.
type ChangeKind string

const (
	ChangeItem        ChangeKind = "item_changed"
	ChangeSelection   ChangeKind = "selection_changed"
	ChangeCurrentItem ChangeKind = "current_item_changed"
)

// ChangeEvent is emitted after every successful mutation of an event's agenda.
type ChangeEvent struct {
	EventID string     `json:"event_id"`
	Kind    ChangeKind `json:"kind"`
	ItemID  string     `json:"item_id,omitempty"`
	GroupID string     `json:"group_id,omitempty"`
	At      time.Time  `json:"at"`
}

// ChangeNotifier receives change events. Delivery onward is the notifier's concern.
type ChangeNotifier interface {
	Notify(ctx context.Context, change ChangeEvent) error
}

// NotifierFunc adapts a function to ChangeNotifier.
type NotifierFunc func(ctx context.Context, change ChangeEvent) error

func (f NotifierFunc) Notify(ctx context.Context, change ChangeEvent) error {
	return f(ctx, change)
}

// MultiNotifier fans a change out to every notifier, returning the first error.
type MultiNotifier []ChangeNotifier

func (m MultiNotifier) Notify(ctx context.Context, change ChangeEvent) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, change); err != nil && first == nil {
			first = err
		}
	}
	return first
}
