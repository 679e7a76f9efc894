package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDuplicateEventID    = errors.New("event with same ID exists")
	ErrNotFoundEvent       = errors.New("event not found")
	ErrNotFoundCalendar    = errors.New("calendar not found")
	ErrDuplicateCalendarID = errors.New("calendar with same ID exists")
	ErrIncorrectStartDate  = errors.New("date should be a first day of requested period")
	ErrIncorrectEventTime  = errors.New("incorrect event time")
)

type Storage interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error

	AddEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, id string, e Event) error
	RemoveEvent(ctx context.Context, id string) error
	// GetEventsForRange selects events of a calendar overlapping the
	// half-open window [startTime, endTime).
	GetEventsForRange(ctx context.Context, calendarID string, startTime, endTime time.Time) ([]Event, error)
	GetEventsForDay(ctx context.Context, calendarID string, date time.Time) ([]Event, error)
	GetEventsForMonth(ctx context.Context, calendarID string, startDate time.Time) ([]Event, error)

	AddCalendar(ctx context.Context, c *Calendar) error
	GetCalendar(ctx context.Context, id string) (Calendar, error)
	ListCalendars(ctx context.Context) ([]Calendar, error)
	AddParticipant(ctx context.Context, p *Participant) error
	ListParticipants(ctx context.Context, calendarID string) ([]Participant, error)
}

// ValidateEventTime enforces the store-boundary guard: an event interval must
// be non-empty and half-open ordered.
func ValidateEventTime(e Event) error {
	if !e.EndTime.After(e.StartTime) {
		return ErrIncorrectEventTime
	}
	return nil
}
