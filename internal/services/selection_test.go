package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"eventagenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupFixture struct {
	*fixture
	agenda  domain.AgendaService
	sel     domain.SelectionService
	eventID string
	a, b    *domain.AgendaItem
}

// newGroupFixture seeds two items in group "slot-11". a holds one seat; b is unlimited.
func newGroupFixture(t *testing.T) *groupFixture {
	t.Helper()
	f := newFixture()
	g := &groupFixture{fixture: f, agenda: NewAgendaService(f.deps), sel: NewSelectionService(f.deps)}
	g.eventID = f.seedEvent(t)
	g.a = newItem("Track A", "2026-05-01", "11:00")
	g.a.SimultaneousGroupID = strPtr("slot-11")
	g.a.MaxAttendees = intPtr(1)
	g.b = newItem("Track B", "2026-05-01", "11:00")
	g.b.SimultaneousGroupID = strPtr("slot-11")
	ctx := context.Background()
	require.NoError(t, g.agenda.CreateItem(ctx, g.eventID, "org-1", g.a))
	require.NoError(t, g.agenda.CreateItem(ctx, g.eventID, "org-1", g.b))
	f.notifier.reset()
	return g
}

func TestSelectionService_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("select then switch within group", func(t *testing.T) {
		g := newGroupFixture(t)

		item, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, item.AttendeeSelections)

		item, err = g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, item.AttendeeSelections)

		a, err := g.agenda.GetItem(ctx, g.a.ID)
		require.NoError(t, err)
		assert.Empty(t, a.AttendeeSelections)

		got, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, g.b.ID, got)
		assert.Equal(t, []domain.ChangeKind{domain.ChangeSelection, domain.ChangeSelection}, g.notifier.kinds())
	})

	t.Run("reselecting the same item is a no-op", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		require.NoError(t, err)
		item, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		require.NoError(t, err, "holder of the only seat may reselect")
		assert.Equal(t, []string{"u1"}, item.AttendeeSelections)
	})

	t.Run("capacity is enforced and nothing changes", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		require.NoError(t, err)
		_, err = g.sel.Select(ctx, g.b.ID, "u2", "slot-11")
		require.NoError(t, err)
		g.notifier.reset()

		_, err = g.sel.Select(ctx, g.a.ID, "u2", "slot-11")
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

		got, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u2")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, g.b.ID, got, "failed select must keep the previous choice")
		assert.Empty(t, g.notifier.kinds())
	})

	t.Run("group mismatch", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-12")
		assert.ErrorIs(t, err, domain.ErrGroupMismatch)
		_, err = g.sel.Select(ctx, g.a.ID, "u1", "")
		assert.ErrorIs(t, err, domain.ErrGroupMismatch)
		assert.Zero(t, g.selections.mutations)
	})

	t.Run("unknown item", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, "nope", "u1", "slot-11")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty user", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, g.a.ID, "", "slot-11")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ungrouped item", func(t *testing.T) {
		g := newGroupFixture(t)
		solo := newItem("Keynote", "2026-05-01", "09:00")
		require.NoError(t, g.agenda.CreateItem(ctx, g.eventID, "org-1", solo))
		item, err := g.sel.Select(ctx, solo.ID, "u1", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, item.AttendeeSelections)
	})

	t.Run("transient store failure is retried", func(t *testing.T) {
		g := newGroupFixture(t)
		g.selections.failNext = 2
		_, err := g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		require.NoError(t, err)
		assert.Equal(t, 3, g.selections.mutations)
	})

	t.Run("persistent transient failure surfaces", func(t *testing.T) {
		g := newGroupFixture(t)
		g.selections.failNext = 10
		_, err := g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		assert.ErrorIs(t, err, domain.ErrTransient)
		assert.Equal(t, 3, g.selections.mutations)
	})

	t.Run("switching frees the seat for the next user", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		require.NoError(t, err)
		_, err = g.sel.Select(ctx, g.a.ID, "u2", "slot-11")
		require.ErrorIs(t, err, domain.ErrCapacityExceeded)

		_, err = g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		require.NoError(t, err)

		item, err := g.sel.Select(ctx, g.a.ID, "u2", "slot-11")
		require.NoError(t, err)
		assert.Equal(t, []string{"u2"}, item.AttendeeSelections)

		snap, err := g.agenda.GetAgenda(ctx, g.eventID)
		require.NoError(t, err)
		require.Len(t, snap.Groups, 1)
		assert.Equal(t, map[string]int{g.a.ID: 1, g.b.ID: 1}, snap.Groups[0].Counts)
	})

	t.Run("item deleted during the write leaves no selection behind", func(t *testing.T) {
		g := newGroupFixture(t)
		g.selections.afterMutate = func() {
			require.NoError(t, g.items.Delete(ctx, g.b.ID))
		}

		_, err := g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		record, err := g.selections.Get(ctx, domain.SelectionGroupKey(g.eventID, "", "slot-11"))
		require.NoError(t, err)
		assert.Empty(t, record.Selections)
		assert.Empty(t, g.notifier.kinds())
	})

	t.Run("deleted item cannot be selected", func(t *testing.T) {
		g := newGroupFixture(t)
		require.NoError(t, g.agenda.DeleteItem(ctx, g.a.ID))
		_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSelectionService_ConcurrentSelectsKeepOneChoice(t *testing.T) {
	ctx := context.Background()
	g := newGroupFixture(t)
	c := newItem("Track C", "2026-05-01", "11:00")
	c.SimultaneousGroupID = strPtr("slot-11")
	require.NoError(t, g.agenda.CreateItem(ctx, g.eventID, "org-1", c))

	targets := []string{g.b.ID, c.ID}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := g.sel.Select(ctx, targets[i%2], "u1", "slot-11")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	b, err := g.agenda.GetItem(ctx, g.b.ID)
	require.NoError(t, err)
	cc, err := g.agenda.GetItem(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, len(b.AttendeeSelections)+len(cc.AttendeeSelections))
}

func TestSelectionService_ConcurrentSelectsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	g := newGroupFixture(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := g.sel.Select(ctx, g.a.ID, fmt.Sprintf("u%d", i), "slot-11")
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	a, err := g.agenda.GetItem(ctx, g.a.ID)
	require.NoError(t, err)
	assert.Len(t, a.AttendeeSelections, 1)
}

func TestSelectionService_Deselect(t *testing.T) {
	ctx := context.Background()
	g := newGroupFixture(t)
	_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
	require.NoError(t, err)
	g.notifier.reset()

	require.NoError(t, g.sel.Deselect(ctx, g.b.ID, "u1", "slot-11"))
	assert.Empty(t, g.notifier.kinds(), "deselecting an item the user does not hold changes nothing")

	require.NoError(t, g.sel.Deselect(ctx, g.a.ID, "u1", "slot-11"))
	assert.Equal(t, []domain.ChangeKind{domain.ChangeSelection}, g.notifier.kinds())

	_, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, g.sel.Deselect(ctx, g.a.ID, "u1", "slot-12"), domain.ErrGroupMismatch)
	assert.ErrorIs(t, g.sel.Deselect(ctx, g.a.ID, "", "slot-11"), domain.ErrInvalidInput)
}

func TestSelectionService_GetSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		g := newGroupFixture(t)
		_, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid input", func(t *testing.T) {
		g := newGroupFixture(t)
		_, _, err := g.sel.GetSelection(ctx, g.eventID, "", "u1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, _, err = g.sel.GetSelection(ctx, g.eventID, "slot-11", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("orphaned selection is hidden", func(t *testing.T) {
		g := newGroupFixture(t)
		_, err := g.selections.Mutate(ctx, domain.SelectionGroupKey(g.eventID, "", "slot-11"), g.eventID, func(sg *domain.SelectionGroup) error {
			sg.Selections["u1"] = "gone"
			return nil
		})
		require.NoError(t, err)
		_, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = g.sel.Select(ctx, g.b.ID, "u1", "slot-11")
		require.NoError(t, err)
		got, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, g.b.ID, got)
	})
}

func TestSelectionService_SameGroupIDInTwoEvents(t *testing.T) {
	ctx := context.Background()
	g := newGroupFixture(t)

	otherEvent := g.seedEvent(t)
	other := newItem("Other conference track", "2026-05-01", "11:00")
	other.SimultaneousGroupID = strPtr("slot-11")
	require.NoError(t, g.agenda.CreateItem(ctx, otherEvent, "org-2", other))

	_, err := g.sel.Select(ctx, g.a.ID, "u1", "slot-11")
	require.NoError(t, err)
	_, err = g.sel.Select(ctx, other.ID, "u1", "slot-11")
	require.NoError(t, err)

	a, err := g.agenda.GetItem(ctx, g.a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, a.AttendeeSelections, "a pick in another event must not move this one")

	got, ok, err := g.sel.GetSelection(ctx, g.eventID, "slot-11", "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g.a.ID, got)

	got, ok, err = g.sel.GetSelection(ctx, otherEvent, "slot-11", "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, other.ID, got)

	snap, err := g.agenda.GetAgenda(ctx, otherEvent)
	require.NoError(t, err)
	require.Len(t, snap.Days, 1)
	require.Len(t, snap.Days[0].Items, 1)
	assert.Equal(t, []string{"u1"}, snap.Days[0].Items[0].AttendeeSelections)
	require.Len(t, snap.Groups, 1)
	assert.Equal(t, map[string]int{other.ID: 1}, snap.Groups[0].Counts)
}
