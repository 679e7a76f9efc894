package memorystorage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	"github.com/s1290025/worldtime-calendar/internal/util"
)

type Storage struct {
	mu           sync.RWMutex
	events       map[string]storage.Event
	calendars    map[string]storage.Calendar
	participants map[string][]storage.Participant
}

func New() *Storage {
	return &Storage{
		events:       make(map[string]storage.Event),
		calendars:    make(map[string]storage.Calendar),
		participants: make(map[string][]storage.Participant),
	}
}

func (s *Storage) Connect(_ context.Context) error {
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	return nil
}

func (s *Storage) AddEvent(_ context.Context, e *storage.Event) error {
	if err := storage.ValidateEventTime(*e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; ok {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.events[e.ID] = *e
	return nil
}

func (s *Storage) UpdateEvent(_ context.Context, id string, e storage.Event) error {
	if err := storage.ValidateEventTime(e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.events[id]
	if !ok {
		return fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	e.ID = id
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	s.events[e.ID] = e
	return nil
}

func (s *Storage) RemoveEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	delete(s.events, id)
	return nil
}

func (s *Storage) GetEventsForRange(
	_ context.Context,
	calendarID string,
	startTime time.Time,
	endTime time.Time,
) ([]storage.Event, error) {
	return s.selectByRange(calendarID, startTime, endTime)
}

func (s *Storage) GetEventsForDay(_ context.Context, calendarID string, date time.Time) ([]storage.Event, error) {
	startTime := util.TruncateToDay(date)
	endTime := startTime.AddDate(0, 0, 1)
	return s.selectByRange(calendarID, startTime, endTime)
}

func (s *Storage) GetEventsForMonth(_ context.Context, calendarID string, startDate time.Time) ([]storage.Event, error) {
	startTime := util.TruncateToDay(startDate)
	if startTime.Day() != 1 {
		return nil, storage.ErrIncorrectStartDate
	}
	endTime := startTime.AddDate(0, 1, 0)
	return s.selectByRange(calendarID, startTime, endTime)
}

func (s *Storage) AddCalendar(_ context.Context, c *storage.Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calendars[c.ID]; ok {
		return fmt.Errorf("duplicate ID %q: %w", c.ID, storage.ErrDuplicateCalendarID)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	s.calendars[c.ID] = *c
	return nil
}

func (s *Storage) GetCalendar(_ context.Context, id string) (storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.calendars[id]
	if !ok {
		return storage.Calendar{}, fmt.Errorf("calendar %q: %w", id, storage.ErrNotFoundCalendar)
	}
	return c, nil
}

func (s *Storage) ListCalendars(_ context.Context) ([]storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	calendars := make([]storage.Calendar, 0, len(s.calendars))
	for _, c := range s.calendars {
		calendars = append(calendars, c)
	}
	return calendars, nil
}

func (s *Storage) AddParticipant(_ context.Context, p *storage.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calendars[p.CalendarID]; !ok {
		return fmt.Errorf("calendar %q: %w", p.CalendarID, storage.ErrNotFoundCalendar)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.JoinedAt = time.Now().UTC()
	p.IsActive = true
	s.participants[p.CalendarID] = append(s.participants[p.CalendarID], *p)
	return nil
}

func (s *Storage) ListParticipants(_ context.Context, calendarID string) ([]storage.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.calendars[calendarID]; !ok {
		return nil, fmt.Errorf("calendar %q: %w", calendarID, storage.ErrNotFoundCalendar)
	}
	participants := make([]storage.Participant, len(s.participants[calendarID]))
	copy(participants, s.participants[calendarID])
	return participants, nil
}

// Select events overlapping [startTime:endTime). Results are ordered by
// start time then ID so repeated reads feed the layout engine identically.
func (s *Storage) selectByRange(calendarID string, startTime time.Time, endTime time.Time) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, event := range s.events {
		if event.CalendarID != calendarID {
			continue
		}
		if event.StartTime.Before(endTime) && event.EndTime.After(startTime) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}
