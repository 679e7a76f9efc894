package sqlstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	"github.com/s1290025/worldtime-calendar/internal/util"
	log "github.com/sirupsen/logrus"
)

var ErrConnectionFailed = errors.New("failed to connect")

const dbErrUniqueViolation = "23505"

type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type Storage struct {
	host     string
	port     int
	database string
	username string
	password string
	db       *sqlx.DB
}

func New(config Config) *Storage {
	return &Storage{
		host:     config.Host,
		port:     config.Port,
		database: config.Database,
		username: config.Username,
		password: config.Password,
	}
}

func (s *Storage) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(
		ctx,
		"postgres",
		fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			s.host, s.port, s.database, s.username, s.password),
	)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return ErrConnectionFailed
	}
	s.db = db
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	if err := storage.ValidateEventTime(*e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO events(id, calendar_id, title, description, start_timestamp, end_timestamp, "+
			"timezone, color, owner_id, all_day, created_at, updated_at) "+
			"VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		e.ID, e.CalendarID, e.Title, e.Description, e.StartTime.UTC(), e.EndTime.UTC(),
		e.Timezone, e.Color, e.OwnerID, e.AllDay, e.CreatedAt, e.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == dbErrUniqueViolation {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}

	return err
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, e storage.Event) error {
	if err := storage.ValidateEventTime(e); err != nil {
		return fmt.Errorf("event end time should be after start time: %w", err)
	}

	var found bool
	err := s.db.GetContext(
		ctx,
		&found,
		"UPDATE events SET title=$2, description=$3, start_timestamp=$4, end_timestamp=$5, "+
			"timezone=$6, color=$7, all_day=$8, updated_at=$9 "+
			"WHERE id=$1 RETURNING TRUE",
		id,
		e.Title,
		e.Description,
		e.StartTime.UTC(),
		e.EndTime.UTC(),
		e.Timezone,
		e.Color,
		e.AllDay,
		time.Now().UTC(),
	)
	if errors.Is(err, sql.ErrNoRows) || !found {
		return fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return err
}

func (s *Storage) RemoveEvent(ctx context.Context, id string) error {
	var found bool
	err := s.db.GetContext(ctx, &found, "DELETE FROM events WHERE id=$1 RETURNING TRUE", id)
	if errors.Is(err, sql.ErrNoRows) || !found {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return err
}

func (s *Storage) GetEventsForRange(
	ctx context.Context,
	calendarID string,
	startTime time.Time,
	endTime time.Time,
) ([]storage.Event, error) {
	return s.selectByRange(ctx, calendarID, startTime, endTime)
}

func (s *Storage) GetEventsForDay(ctx context.Context, calendarID string, date time.Time) ([]storage.Event, error) {
	startTime := util.TruncateToDay(date)
	endTime := startTime.AddDate(0, 0, 1)
	return s.selectByRange(ctx, calendarID, startTime, endTime)
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
	endTime := startTime.AddDate(0, 1, 0)
	return s.selectByRange(ctx, calendarID, startTime, endTime)
}

func (s *Storage) AddCalendar(ctx context.Context, c *storage.Calendar) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO calendars(id, name, url, created_by, created_at) VALUES($1, $2, $3, $4, $5)",
		c.ID, c.Name, c.URL, c.CreatedBy, c.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == dbErrUniqueViolation {
		return fmt.Errorf("duplicate ID %q: %w", c.ID, storage.ErrDuplicateCalendarID)
	}
	return err
}

func (s *Storage) GetCalendar(ctx context.Context, id string) (storage.Calendar, error) {
	var c storage.Calendar
	err := s.db.GetContext(
		ctx,
		&c,
		"SELECT id, name, url, created_by, created_at FROM calendars WHERE id=$1",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Calendar{}, fmt.Errorf("calendar %q: %w", id, storage.ErrNotFoundCalendar)
	}
	return c, err
}

func (s *Storage) ListCalendars(ctx context.Context) ([]storage.Calendar, error) {
	calendars := make([]storage.Calendar, 0)
	err := s.db.SelectContext(
		ctx,
		&calendars,
		"SELECT id, name, url, created_by, created_at FROM calendars ORDER BY created_at",
	)
	return calendars, err
}

func (s *Storage) AddParticipant(ctx context.Context, p *storage.Participant) error {
	if _, err := s.GetCalendar(ctx, p.CalendarID); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.JoinedAt = time.Now().UTC()
	p.IsActive = true

	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO participants(id, calendar_id, name, color, joined_at, is_active) "+
			"VALUES($1, $2, $3, $4, $5, $6)",
		p.ID, p.CalendarID, p.Name, p.Color, p.JoinedAt, p.IsActive)
	return err
}

func (s *Storage) ListParticipants(ctx context.Context, calendarID string) ([]storage.Participant, error) {
	if _, err := s.GetCalendar(ctx, calendarID); err != nil {
		return nil, err
	}
	participants := make([]storage.Participant, 0)
	err := s.db.SelectContext(
		ctx,
		&participants,
		"SELECT id, calendar_id, name, color, joined_at, is_active FROM participants "+
			"WHERE calendar_id=$1 ORDER BY joined_at",
		calendarID,
	)
	return participants, err
}

// Select events overlapping [startTime:endTime), ordered for deterministic
// layout input.
func (s *Storage) selectByRange(
	ctx context.Context,
	calendarID string,
	startTime time.Time,
	endTime time.Time,
) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	err := s.db.SelectContext(
		ctx,
		&events,
		"SELECT id, calendar_id, title, description, start_timestamp, end_timestamp, "+
			"timezone, color, owner_id, all_day, created_at, updated_at "+
			"FROM events WHERE calendar_id=$1 AND start_timestamp<$3 AND end_timestamp>$2 "+
			"ORDER BY start_timestamp, id",
		calendarID,
		startTime,
		endTime,
	)

	return events, err
}
