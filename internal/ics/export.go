// Package ics renders a shared calendar's events as an iCalendar document so
// participants can subscribe from their own calendar clients.
package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"
	"github.com/s1290025/worldtime-calendar/internal/storage"
)

const prodID = "-//worldtime-calendar//calendar export//EN"

// Export serializes a calendar and its events to iCalendar text. Instants are
// written in UTC; the viewer's client converts to local wall clock.
func Export(calendar storage.Calendar, events []storage.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName(calendar.Name)

	for _, e := range events {
		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(e.UpdatedAt.UTC())
		ev.SetCreatedTime(e.CreatedAt.UTC())
		ev.SetModifiedAt(e.UpdatedAt.UTC())
		if e.AllDay {
			ev.SetAllDayStartAt(e.StartTime.UTC())
			ev.SetAllDayEndAt(e.EndTime.UTC())
		} else {
			ev.SetStartAt(e.StartTime.UTC())
			ev.SetEndAt(e.EndTime.UTC())
		}
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Color != "" {
			ev.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		}
	}
	return cal.Serialize()
}

// Filename returns the suggested attachment name for a calendar export.
func Filename(calendar storage.Calendar) string {
	return fmt.Sprintf("%s.ics", calendar.ID)
}
