package services

import (
	"sort"
	"time"

	"eventagenda/internal/domain"
)

type dayBucket struct {
	date   string
	parsed time.Time
	ok     bool
	first  int
	items  []*domain.AgendaItem
}

type itemKey struct {
	item  *domain.AgendaItem
	start time.Duration
	ok    bool
}

// OrderAgenda groups items by date and sorts them chronologically.
// Days with a parseable date come first in ascending order; the rest keep their
// first-appearance order. Within a day items sort by start time, then Order,
// then ID. The input slice is not modified.
func OrderAgenda(items []*domain.AgendaItem) []domain.AgendaDay {
	byDate := make(map[string]*dayBucket)
	var buckets []*dayBucket
	for _, item := range items {
		if item == nil {
			continue
		}
		b, ok := byDate[item.Date]
		if !ok {
			parsed, parsedOK := domain.ParseAgendaDate(item.Date)
			b = &dayBucket{date: item.Date, parsed: parsed, ok: parsedOK, first: len(buckets)}
			byDate[item.Date] = b
			buckets = append(buckets, b)
		}
		b.items = append(b.items, item)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok {
			if !a.parsed.Equal(b.parsed) {
				return a.parsed.Before(b.parsed)
			}
			return a.date < b.date
		}
		return a.first < b.first
	})

	days := make([]domain.AgendaDay, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, domain.AgendaDay{Date: b.date, Items: sortDay(b.items)})
	}
	return days
}

func sortDay(items []*domain.AgendaItem) []*domain.AgendaItem {
	keys := make([]itemKey, len(items))
	for i, item := range items {
		start, ok := domain.ParseClock(item.StartTime)
		keys[i] = itemKey{item: item, start: start, ok: ok}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && a.start != b.start {
			return a.start < b.start
		}
		if a.item.Order != b.item.Order {
			return a.item.Order < b.item.Order
		}
		return a.item.ID < b.item.ID
	})
	out := make([]*domain.AgendaItem, len(keys))
	for i, k := range keys {
		out[i] = k.item
	}
	return out
}
