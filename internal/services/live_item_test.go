package services

import (
	"context"
	"testing"

	"eventagenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveItemService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	eventID := f.seedEvent(t)
	otherEvent := f.seedEvent(t)
	agenda := NewAgendaService(f.deps)
	live := NewLiveItemService(f.deps)

	item := newItem("Keynote", "2026-05-01", "09:00")
	require.NoError(t, agenda.CreateItem(ctx, eventID, "org-1", item))
	foreign := newItem("Elsewhere", "2026-05-01", "09:00")
	require.NoError(t, agenda.CreateItem(ctx, otherEvent, "org-1", foreign))
	f.notifier.reset()

	current, err := live.GetCurrent(ctx, eventID)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, live.SetCurrent(ctx, eventID, &item.ID))
	current, err = live.GetCurrent(ctx, eventID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, item.ID, *current)

	err = live.SetCurrent(ctx, eventID, &foreign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = live.SetCurrent(ctx, eventID, strPtr("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	current, _ = live.GetCurrent(ctx, eventID)
	assert.Equal(t, item.ID, *current, "failed set leaves the pointer alone")

	require.NoError(t, live.SetCurrent(ctx, eventID, nil))
	current, err = live.GetCurrent(ctx, eventID)
	require.NoError(t, err)
	assert.Nil(t, current)

	assert.Equal(t, []domain.ChangeKind{domain.ChangeCurrentItem, domain.ChangeCurrentItem}, f.notifier.kinds())

	_, err = live.GetCurrent(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, live.SetCurrent(ctx, "missing", nil), domain.ErrNotFound)
}
