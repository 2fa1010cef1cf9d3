package services

import (
	"math/rand"
	"testing"

	"eventagenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(day domain.AgendaDay) []string {
	out := make([]string, len(day.Items))
	for i, item := range day.Items {
		out[i] = item.Title
	}
	return out
}

func TestOrderAgenda(t *testing.T) {
	item := func(id, title, date, start string, order int) *domain.AgendaItem {
		return &domain.AgendaItem{ID: id, Title: title, Date: date, StartTime: start, Order: order}
	}

	t.Run("days ascending, items by start time", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("1", "Day two", "2026-05-02", "09:00", 0),
			item("2", "Afternoon", "2026-05-01", "2:15 PM", 0),
			item("3", "Morning", "2026-05-01", "09:30", 0),
			item("4", "Noon", "2026-05-01", "12:00", 0),
		})
		require.Len(t, days, 2)
		assert.Equal(t, "2026-05-01", days[0].Date)
		assert.Equal(t, []string{"Morning", "Noon", "Afternoon"}, titles(days[0]))
		assert.Equal(t, []string{"Day two"}, titles(days[1]))
	})

	t.Run("mixed date formats sort by calendar", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("1", "B", "May 2, 2026", "09:00", 0),
			item("2", "A", "2026-05-01", "09:00", 0),
		})
		require.Len(t, days, 2)
		assert.Equal(t, "2026-05-01", days[0].Date)
		assert.Equal(t, "May 2, 2026", days[1].Date)
	})

	t.Run("unparseable dates go last in appearance order", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("1", "X", "Day Z", "09:00", 0),
			item("2", "Y", "Day A", "09:00", 0),
			item("3", "Real", "2026-05-01", "09:00", 0),
		})
		require.Len(t, days, 3)
		assert.Equal(t, []string{"2026-05-01", "Day Z", "Day A"}, []string{days[0].Date, days[1].Date, days[2].Date})
	})

	t.Run("ties break on order then id", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("b", "Second id", "2026-05-01", "10:00", 1),
			item("c", "Late order", "2026-05-01", "10:00", 2),
			item("a", "First id", "2026-05-01", "10:00", 1),
			item("z", "Early order", "2026-05-01", "10:00", 0),
		})
		assert.Equal(t, []string{"Early order", "First id", "Second id", "Late order"}, titles(days[0]))
	})

	t.Run("unparseable start times sort last", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("1", "TBD", "2026-05-01", "later", 0),
			item("2", "Evening", "2026-05-01", "7 PM", 0),
		})
		assert.Equal(t, []string{"Evening", "TBD"}, titles(days[0]))
	})

	t.Run("conference days in calendar order", func(t *testing.T) {
		days := OrderAgenda([]*domain.AgendaItem{
			item("1", "Closing", "2025-10-03", "16:00", 0),
			item("2", "Workshop", "2025-10-03", "09:00", 0),
			item("3", "Keynote", "2025-10-02", "09:00", 0),
		})
		require.Len(t, days, 2)
		assert.Equal(t, "2025-10-02", days[0].Date)
		assert.Equal(t, []string{"Keynote"}, titles(days[0]))
		assert.Equal(t, "2025-10-03", days[1].Date)
		assert.Equal(t, []string{"Workshop", "Closing"}, titles(days[1]))
	})

	t.Run("output does not depend on input order", func(t *testing.T) {
		items := []*domain.AgendaItem{
			item("1", "Closing", "2025-10-03", "16:00", 0),
			item("2", "Track A", "2025-10-03", "11:00", 1),
			item("3", "Track B", "2025-10-03", "11:00", 1),
			item("4", "Keynote", "2025-10-02", "09:00", 0),
			item("5", "Lunch", "2025-10-02", "12:00 PM", 0),
			item("6", "Social", "Oct 4, 2025", "19:00", 0),
			item("7", "TBD", "2025-10-02", "later", 0),
		}
		want := OrderAgenda(items)
		require.Len(t, want, 3)
		assert.Equal(t, []string{"Keynote", "Lunch", "TBD"}, titles(want[0]))
		assert.Equal(t, []string{"Track A", "Track B", "Closing"}, titles(want[1]))

		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 50; i++ {
			shuffled := append([]*domain.AgendaItem(nil), items...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			require.Equal(t, want, OrderAgenda(shuffled), "permutation %d", i)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		days := OrderAgenda(nil)
		assert.NotNil(t, days)
		assert.Empty(t, days)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []*domain.AgendaItem{
			item("1", "Late", "2026-05-01", "18:00", 0),
			item("2", "Early", "2026-05-01", "08:00", 0),
		}
		OrderAgenda(in)
		assert.Equal(t, "Late", in[0].Title)
	})
}
