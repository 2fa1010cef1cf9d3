package calendar

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"eventagenda/internal/domain"
)

const floatingLayout = "20060102T150405"

// Exporter renders an agenda snapshot as an iCalendar feed.
type Exporter struct {
	prodID string
	domain string
}

// NewExporter returns an exporter stamping feeds with prodID. UIDs are
// "<item id>@<uidDomain>".
func NewExporter(prodID, uidDomain string) *Exporter {
	if prodID == "" {
		prodID = "-//eventagenda//agenda//EN"
	}
	if uidDomain == "" {
		uidDomain = "eventagenda"
	}
	return &Exporter{prodID: prodID, domain: uidDomain}
}

// Export writes one VEVENT per item whose date and start time parse. Times
// are floating: agenda items carry no zone. Items without a parseable end
// time, or ending before they start, are emitted without DTEND.
func (e *Exporter) Export(w io.Writer, event *domain.Event, snap *domain.AgendaSnapshot) (int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.prodID)
	if event != nil && event.Name != "" {
		cal.SetXWRCalName(event.Name)
	}

	stamp := snap.GeneratedAt.UTC()
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}

	written := 0
	for _, day := range snap.Days {
		for _, item := range day.Items {
			start, end, ok := itemWindow(item)
			if !ok {
				continue
			}
			ev := cal.AddEvent(item.ID + "@" + e.domain)
			ev.SetDtStampTime(stamp)
			ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
			if !end.IsZero() {
				ev.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatingLayout))
			}
			ev.SetSummary(item.Title)
			if desc := describe(item); desc != "" {
				ev.SetDescription(desc)
			}
			if item.Location != nil && *item.Location != "" {
				ev.SetLocation(*item.Location)
			}
			ev.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(item.Category)))
			ev.SetProperty(ics.ComponentPropertySequence, strconv.Itoa(item.Version))
			if !item.UpdatedAt.IsZero() {
				ev.SetModifiedAt(item.UpdatedAt.UTC())
			}
			written++
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return written, fmt.Errorf("write calendar: %w", err)
	}
	return written, nil
}

func itemWindow(item *domain.AgendaItem) (start, end time.Time, ok bool) {
	day, ok := domain.ParseAgendaDate(item.Date)
	if !ok {
		return start, end, false
	}
	from, ok := domain.ParseClock(item.StartTime)
	if !ok {
		return start, end, false
	}
	start = day.Add(from)
	if to, ok := domain.ParseClock(item.EndTime); ok && to > from {
		end = day.Add(to)
	}
	return start, end, true
}

func describe(item *domain.AgendaItem) string {
	var parts []string
	if item.Speaker != nil && *item.Speaker != "" {
		parts = append(parts, "Speaker: "+*item.Speaker)
	}
	if item.Description != nil && *item.Description != "" {
		parts = append(parts, *item.Description)
	}
	return strings.Join(parts, "\n\n")
}
