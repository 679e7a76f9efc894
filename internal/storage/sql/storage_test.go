//go:build sql

package sqlstorage_test

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	sqlstorage "github.com/s1290025/worldtime-calendar/internal/storage/sql"
	"github.com/stretchr/testify/require"
)

var (
	host     = "127.0.0.1"
	port     = 5532
	database = "testing"
	username = "postgres"
	password = "pas"
)

func TestMain(m *testing.M) {
	pgHost := os.Getenv("POSTGRES_HOST")
	pgPort := os.Getenv("POSTGRES_PORT")
	if pgHost != "" {
		host = pgHost
	}
	if pgPort != "" {
		port, _ = strconv.Atoi(pgPort)
	}

	cleanupDb()
	code := m.Run()
	os.Exit(code)
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("add event", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		s := createStorage(t)
		c := createCalendar(t, s)
		e := storage.Event{
			CalendarID:  c.ID,
			Title:       "test",
			StartTime:   initDate.Add(1 * time.Hour),
			EndTime:     initDate.Add(2 * time.Hour),
			Timezone:    "Asia/Tokyo",
			Color:       "#DC143C",
			Description: "description",
			OwnerID:     "testId",
		}

		require.NoError(t, s.AddEvent(ctx, &e))
		require.NotEmpty(t, e.ID)

		events, err := s.GetEventsForDay(ctx, c.ID, initDate)
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		compareEvents(t, e, events[0])
	})

	t.Run("update event", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		s := createStorage(t)
		c := createCalendar(t, s)
		e := storage.Event{
			CalendarID: c.ID,
			Title:      "test",
			StartTime:  initDate.Add(1 * time.Hour),
			EndTime:    initDate.Add(2 * time.Hour),
		}
		require.NoError(t, s.AddEvent(ctx, &e))

		e.Title = "updated title"
		e.Description = "updated description"
		e.StartTime = e.StartTime.Add(21 * time.Minute)
		e.EndTime = e.EndTime.Add(33 * time.Minute)

		require.NoError(t, s.UpdateEvent(ctx, e.ID, e))

		events, err := s.GetEventsForDay(ctx, c.ID, initDate)
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, "updated title", events[0].Title)
	})

	t.Run("delete event", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		s := createStorage(t)
		c := createCalendar(t, s)
		e := storage.Event{
			CalendarID: c.ID,
			Title:      "test",
			StartTime:  initDate.Add(1 * time.Hour),
			EndTime:    initDate.Add(2 * time.Hour),
		}
		require.NoError(t, s.AddEvent(ctx, &e))
		require.NoError(t, s.RemoveEvent(ctx, e.ID))

		events, err := s.GetEventsForDay(ctx, c.ID, initDate)
		require.NoError(t, err)
		require.Equal(t, 0, len(events))
	})

	t.Run("overlap selection", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		s := createStorage(t)
		c := createCalendar(t, s)

		overnight := storage.Event{
			CalendarID: c.ID,
			Title:      "overnight",
			StartTime:  initDate.Add(-2 * time.Hour),
			EndTime:    initDate.Add(1 * time.Hour),
		}
		touching := storage.Event{
			CalendarID: c.ID,
			Title:      "touching",
			StartTime:  initDate.Add(-2 * time.Hour),
			EndTime:    initDate,
		}
		require.NoError(t, s.AddEvent(ctx, &overnight))
		require.NoError(t, s.AddEvent(ctx, &touching))

		events, err := s.GetEventsForDay(ctx, c.ID, initDate)
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, "overnight", events[0].Title)
	})

	t.Run("participants", func(t *testing.T) {
		s := createStorage(t)
		c := createCalendar(t, s)

		p := storage.Participant{CalendarID: c.ID, Name: "bob", Color: "#0000FF"}
		require.NoError(t, s.AddParticipant(ctx, &p))
		require.NotEmpty(t, p.ID)

		participants, err := s.ListParticipants(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, 1, len(participants))
		require.Equal(t, "bob", participants[0].Name)
	})
}

func TestStorageNegativeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("add event with same id", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		s := createStorage(t)
		c := createCalendar(t, s)
		e := storage.Event{
			CalendarID: c.ID,
			Title:      "test",
			StartTime:  initDate.Add(1 * time.Hour),
			EndTime:    initDate.Add(2 * time.Hour),
		}

		require.NoError(t, s.AddEvent(ctx, &e))
		dup := e
		require.ErrorIs(t, s.AddEvent(ctx, &dup), storage.ErrDuplicateEventID)
	})

	t.Run("update not exist event", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		e := storage.Event{ID: "___not_exists___", StartTime: initDate, EndTime: initDate.Add(time.Hour)}
		s := createStorage(t)

		require.ErrorIs(t, s.UpdateEvent(ctx, e.ID, e), storage.ErrNotFoundEvent)
	})

	t.Run("delete not exist event", func(t *testing.T) {
		s := createStorage(t)

		require.ErrorIs(t, s.RemoveEvent(ctx, "___not_exists___"), storage.ErrNotFoundEvent)
	})

	t.Run("incorrect event time for insert", func(t *testing.T) {
		initDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
		e := storage.Event{StartTime: initDate.Add(time.Hour), EndTime: initDate}
		s := createStorage(t)

		require.ErrorIs(t, s.AddEvent(ctx, &e), storage.ErrIncorrectEventTime)
	})

	t.Run("month start date validated", func(t *testing.T) {
		s := createStorage(t)
		c := createCalendar(t, s)

		_, err := s.GetEventsForMonth(ctx, c.ID, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC))
		require.ErrorIs(t, err, storage.ErrIncorrectStartDate)
	})

	t.Run("participant for missing calendar", func(t *testing.T) {
		s := createStorage(t)
		p := storage.Participant{CalendarID: "___not_exists___", Name: "eve"}

		require.ErrorIs(t, s.AddParticipant(context.Background(), &p), storage.ErrNotFoundCalendar)
	})
}

func cleanupDb() error {
	db, err := sqlx.Connect(
		"postgres",
		fmt.Sprintf("sslmode=disable host=%s port=%d dbname=%s user=%s password=%s", host, port, database, username, password),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("TRUNCATE TABLE events, participants, calendars")
	return err
}

func compareEvents(t *testing.T, expected storage.Event, actual storage.Event) {
	t.Helper()
	require.True(t, expected.StartTime.Equal(actual.StartTime),
		"start time is not equals %q != %q", expected.StartTime, actual.StartTime)
	require.True(t, expected.EndTime.Equal(actual.EndTime),
		"end time is not equals %q != %q", expected.EndTime, actual.EndTime)
	expected.StartTime = actual.StartTime
	expected.EndTime = actual.EndTime
	expected.CreatedAt = actual.CreatedAt
	expected.UpdatedAt = actual.UpdatedAt
	require.Equal(t, expected, actual)
}

func createCalendar(t *testing.T, s *sqlstorage.Storage) storage.Calendar {
	t.Helper()
	c := storage.Calendar{Name: "team", URL: "http://localhost/shared/x", CreatedBy: "alice"}
	require.NoError(t, s.AddCalendar(context.Background(), &c))
	return c
}

func createStorage(t *testing.T) *sqlstorage.Storage {
	t.Helper()
	s := sqlstorage.New(sqlstorage.Config{
		Host: host, Port: port, Database: database, Username: username, Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() {
		s.Close(ctx)
		require.NoError(t, cleanupDb())
	})
	return s
}
