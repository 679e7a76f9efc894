package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/s1290025/worldtime-calendar/internal/colors"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	"github.com/s1290025/worldtime-calendar/internal/timezone"
)

type App struct {
	Storage  storage.Storage
	Timezone *timezone.Engine
}

func New(stor storage.Storage) *App {
	return &App{
		Storage:  stor,
		Timezone: timezone.NewEngine(timezone.NewIANAProvider()),
	}
}

func (a *App) CreateEvent(ctx context.Context, e storage.Event) (string, error) {
	if e.Timezone != "" {
		if _, err := a.Timezone.ToLocal(e.StartTime, e.Timezone); err != nil {
			return "", err
		}
	}
	if err := a.Storage.AddEvent(ctx, &e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (a *App) UpdateEvent(ctx context.Context, id string, e storage.Event) error {
	return a.Storage.UpdateEvent(ctx, id, e)
}

func (a *App) RemoveEvent(ctx context.Context, id string) error {
	return a.Storage.RemoveEvent(ctx, id)
}

func (a *App) GetEventsForDay(ctx context.Context, calendarID string, date time.Time) ([]storage.Event, error) {
	return a.Storage.GetEventsForDay(ctx, calendarID, date)
}

// CreateCalendar registers a shared calendar and derives its invite URL.
func (a *App) CreateCalendar(ctx context.Context, name, createdBy, baseURL string) (storage.Calendar, error) {
	c := storage.Calendar{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
	}
	c.URL = strings.TrimSuffix(baseURL, "/") + "/shared/" + c.ID
	if err := a.Storage.AddCalendar(ctx, &c); err != nil {
		return storage.Calendar{}, err
	}
	return c, nil
}

func (a *App) GetCalendar(ctx context.Context, id string) (storage.Calendar, error) {
	return a.Storage.GetCalendar(ctx, id)
}

func (a *App) ListCalendars(ctx context.Context) ([]storage.Calendar, error) {
	return a.Storage.ListCalendars(ctx)
}

// JoinCalendar adds a participant, assigning a palette color not yet used by
// other members of the calendar.
func (a *App) JoinCalendar(ctx context.Context, calendarID, name string) (storage.Participant, error) {
	members, err := a.Storage.ListParticipants(ctx, calendarID)
	if err != nil {
		return storage.Participant{}, err
	}
	used := make([]string, 0, len(members))
	for _, m := range members {
		used = append(used, m.Color)
	}
	p := storage.Participant{
		CalendarID: calendarID,
		Name:       name,
		Color:      colors.RandomAvailable(used),
	}
	if err := a.Storage.AddParticipant(ctx, &p); err != nil {
		return storage.Participant{}, err
	}
	return p, nil
}

func (a *App) ListParticipants(ctx context.Context, calendarID string) ([]storage.Participant, error) {
	return a.Storage.ListParticipants(ctx, calendarID)
}
