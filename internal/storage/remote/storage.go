// Package remotestorage implements the storage interface over a remote
// calendar REST API (a hosted database exposing events, calendars and
// participants as JSON collections).
package remotestorage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	"github.com/s1290025/worldtime-calendar/internal/util"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Storage struct {
	client *resty.Client
}

func New(config Config) *Storage {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if config.APIKey != "" {
		client.SetHeader("apikey", config.APIKey)
		client.SetAuthToken(config.APIKey)
	}
	return &Storage{client: client}
}

func (s *Storage) Connect(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("failed to reach remote storage: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote storage unhealthy: %s", resp.Status())
	}
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	return nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	if err := storage.ValidateEventTime(*e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(e).
		SetResult(e).
		Post("/events")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusConflict {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}
	return checkStatus(resp)
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, e storage.Event) error {
	if err := storage.ValidateEventTime(e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(e).
		Patch("/events/{id}")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return checkStatus(resp)
}

func (s *Storage) RemoveEvent(ctx context.Context, id string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/events/{id}")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return checkStatus(resp)
}

func (s *Storage) GetEventsForRange(
	ctx context.Context,
	calendarID string,
	startTime time.Time,
	endTime time.Time,
) ([]storage.Event, error) {
	var events []storage.Event
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"calendar_id": calendarID,
			"from":        startTime.UTC().Format(time.RFC3339),
			"to":          endTime.UTC().Format(time.RFC3339),
		}).
		SetResult(&events).
		Get("/events")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Storage) GetEventsForDay(ctx context.Context, calendarID string, date time.Time) ([]storage.Event, error) {
	startTime := util.TruncateToDay(date)
	return s.GetEventsForRange(ctx, calendarID, startTime, startTime.AddDate(0, 0, 1))
}

func (s *Storage) GetEventsForMonth(
	ctx context.Context,
	calendarID string,
	startDate time.Time,
) ([]storage.Event, error) {
	startTime := util.TruncateToDay(startDate)
	if startTime.Day() != 1 {
		return nil, storage.ErrIncorrectStartDate
	}
	return s.GetEventsForRange(ctx, calendarID, startTime, startTime.AddDate(0, 1, 0))
}

func (s *Storage) AddCalendar(ctx context.Context, c *storage.Calendar) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(c).
		SetResult(c).
		Post("/calendars")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusConflict {
		return fmt.Errorf("duplicate ID %q: %w", c.ID, storage.ErrDuplicateCalendarID)
	}
	return checkStatus(resp)
}

func (s *Storage) GetCalendar(ctx context.Context, id string) (storage.Calendar, error) {
	var c storage.Calendar
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&c).
		Get("/calendars/{id}")
	if err != nil {
		return storage.Calendar{}, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return storage.Calendar{}, fmt.Errorf("calendar %q: %w", id, storage.ErrNotFoundCalendar)
	}
	if err := checkStatus(resp); err != nil {
		return storage.Calendar{}, err
	}
	return c, nil
}

func (s *Storage) ListCalendars(ctx context.Context) ([]storage.Calendar, error) {
	var calendars []storage.Calendar
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&calendars).
		Get("/calendars")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return calendars, nil
}

func (s *Storage) AddParticipant(ctx context.Context, p *storage.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", p.CalendarID).
		SetBody(p).
		SetResult(p).
		Post("/calendars/{id}/participants")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("calendar %q: %w", p.CalendarID, storage.ErrNotFoundCalendar)
	}
	return checkStatus(resp)
}

func (s *Storage) ListParticipants(ctx context.Context, calendarID string) ([]storage.Participant, error) {
	var participants []storage.Participant
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", calendarID).
		SetResult(&participants).
		Get("/calendars/{id}/participants")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("calendar %q: %w", calendarID, storage.ErrNotFoundCalendar)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return participants, nil
}

func checkStatus(resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("remote storage request failed: %s: %s", resp.Status(), resp.String())
	}
	return nil
}
