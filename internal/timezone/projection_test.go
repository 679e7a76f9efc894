package timezone_test

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/s1290025/worldtime-calendar/internal/timezone"
	"github.com/stretchr/testify/require"
)

type fixedRules struct {
	zones map[string]*time.Location
}

func (f fixedRules) Rules(name string) (*time.Location, error) {
	loc, ok := f.zones[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, timezone.ErrInvalidTimezone)
	}
	return loc, nil
}

func newEngine() *timezone.Engine {
	return timezone.NewEngine(timezone.NewIANAProvider())
}

func TestProjectBaselineHour(t *testing.T) {
	e := newEngine()

	t.Run("midnight of reference date", func(t *testing.T) {
		instant, err := e.ProjectBaselineHour("2025-10-22", "Asia/Tokyo", 0)
		require.NoError(t, err)

		local, err := e.ToLocal(instant, "Asia/Tokyo")
		require.NoError(t, err)
		require.Equal(t, timezone.LocalTime{Date: "2025-10-22", Hour: 0, Minute: 0}, local)
	})

	t.Run("round trip without DST", func(t *testing.T) {
		// Asia/Tokyo has no DST, so every offset maps back to offset mod 24.
		for offset := -48; offset <= 72; offset++ {
			instant, err := e.ProjectBaselineHour("2025-10-22", "Asia/Tokyo", offset)
			require.NoError(t, err)

			local, err := e.ToLocal(instant, "Asia/Tokyo")
			require.NoError(t, err)
			require.Equal(t, ((offset%24)+24)%24, local.Hour, "offset %d", offset)
		}
	})

	t.Run("negative offset reaches previous day", func(t *testing.T) {
		instant, err := e.ProjectBaselineHour("2025-10-22", "Asia/Tokyo", -1)
		require.NoError(t, err)

		local, err := e.ToLocal(instant, "Asia/Tokyo")
		require.NoError(t, err)
		require.Equal(t, "2025-10-21", local.Date)
		require.Equal(t, 23, local.Hour)
	})

	t.Run("spring forward gap normalizes without error", func(t *testing.T) {
		// 2025-03-09 02:00 does not exist in America/New_York; civil-time
		// arithmetic shifts it forward to 03:00 EDT.
		instant, err := e.ProjectBaselineHour("2025-03-09", "America/New_York", 2)
		require.NoError(t, err)

		local, err := e.ToLocal(instant, "America/New_York")
		require.NoError(t, err)
		require.Equal(t, "2025-03-09", local.Date)
		require.Equal(t, 3, local.Hour)

		three, err := e.ProjectBaselineHour("2025-03-09", "America/New_York", 3)
		require.NoError(t, err)
		require.True(t, instant.Equal(three))
	})

	t.Run("unknown baseline timezone", func(t *testing.T) {
		_, err := e.ProjectBaselineHour("2025-10-22", "Not/AZone", 0)
		require.ErrorIs(t, err, timezone.ErrInvalidTimezone)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := e.ProjectBaselineHour("22.10.2025", "Asia/Tokyo", 0)
		require.Error(t, err)
	})
}

func TestToLocalAcrossZones(t *testing.T) {
	e := newEngine()

	// Tokyo midnight on Oct 22 is still the previous evening in New York.
	instant, err := e.ProjectBaselineHour("2025-10-22", "Asia/Tokyo", 0)
	require.NoError(t, err)

	local, err := e.ToLocal(instant, "America/New_York")
	require.NoError(t, err)
	require.Equal(t, timezone.LocalTime{Date: "2025-10-21", Hour: 11, Minute: 0}, local)

	_, err = e.ToLocal(instant, "Not/AZone")
	require.ErrorIs(t, err, timezone.ErrInvalidTimezone)
}

func TestClassifyAgainstDay(t *testing.T) {
	e := newEngine()
	const date = "2025-10-22"
	const tz = "America/New_York"

	midnight, err := e.ProjectBaselineHour(date, tz, 0)
	require.NoError(t, err)
	nextMidnight, err := e.ProjectBaselineHour(date, tz, 24)
	require.NoError(t, err)

	tests := []struct {
		name    string
		instant time.Time
		want    timezone.DayRelation
	}{
		{"start boundary is same day", midnight, timezone.SameDay},
		{"just before start is previous day", midnight.Add(-time.Second), timezone.PreviousDay},
		{"middle of day", midnight.Add(12 * time.Hour), timezone.SameDay},
		{"just before end is same day", nextMidnight.Add(-time.Second), timezone.SameDay},
		{"end boundary is next day", nextMidnight, timezone.NextDay},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.ClassifyAgainstDay(tc.instant, tz, date)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("same instant classifies differently per zone", func(t *testing.T) {
		tokyoMidnight, err := e.ProjectBaselineHour(date, "Asia/Tokyo", 0)
		require.NoError(t, err)

		got, err := e.ClassifyAgainstDay(tokyoMidnight, "America/New_York", date)
		require.NoError(t, err)
		require.Equal(t, timezone.PreviousDay, got)
	})
}

func TestDateChangedAt(t *testing.T) {
	e := newEngine()

	first, err := e.ProjectBaselineHour("2025-10-22", "Asia/Tokyo", 0)
	require.NoError(t, err)

	changed, err := e.DateChangedAt(first, "Asia/Tokyo")
	require.NoError(t, err)
	require.True(t, changed)

	noon := first.Add(12 * time.Hour)
	changed, err = e.DateChangedAt(noon, "Asia/Tokyo")
	require.NoError(t, err)
	require.False(t, changed)

	// The same hour row changes date at a different position in another zone.
	changed, err = e.DateChangedAt(first, "America/New_York")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestEngineWithSyntheticRules(t *testing.T) {
	e := timezone.NewEngine(fixedRules{zones: map[string]*time.Location{
		"fixed+5": time.FixedZone("fixed+5", 5*3600),
		"utc":     time.UTC,
	}})

	instant, err := e.ProjectBaselineHour("2025-01-15", "fixed+5", 10)
	require.NoError(t, err)

	local, err := e.ToLocal(instant, "fixed+5")
	require.NoError(t, err)
	require.Equal(t, timezone.LocalTime{Date: "2025-01-15", Hour: 10, Minute: 0}, local)

	local, err = e.ToLocal(instant, "utc")
	require.NoError(t, err)
	require.Equal(t, timezone.LocalTime{Date: "2025-01-15", Hour: 5, Minute: 0}, local)

	_, err = e.ToLocal(instant, "Asia/Tokyo")
	require.ErrorIs(t, err, timezone.ErrInvalidTimezone)
}

func TestDayWindow(t *testing.T) {
	e := newEngine()

	start, end, err := e.DayWindow("2025-10-22", "Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, end.Sub(start))

	// The DST transition day is only 23 hours long.
	start, end, err = e.DayWindow("2025-03-09", "America/New_York")
	require.NoError(t, err)
	require.Equal(t, 23*time.Hour, end.Sub(start))
}
