package timezone_test

import (
	"sort"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/s1290025/worldtime-calendar/internal/timezone"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("countries are sorted and unique", func(t *testing.T) {
		countries := timezone.Countries()
		require.NotEmpty(t, countries)
		require.True(t, sort.StringsAreSorted(countries))

		seen := make(map[string]struct{})
		for _, c := range countries {
			_, dup := seen[c]
			require.False(t, dup, "duplicate country %s", c)
			seen[c] = struct{}{}
		}
	})

	t.Run("grouping covers every option", func(t *testing.T) {
		grouped := timezone.ByCountry()
		total := 0
		for country, options := range grouped {
			total += len(options)
			for _, opt := range options {
				require.Equal(t, country, opt.Country)
			}
		}
		require.Equal(t, len(timezone.Options), total)
	})

	t.Run("for country", func(t *testing.T) {
		us := timezone.ForCountry("United States")
		require.Len(t, us, 6)
		require.Empty(t, timezone.ForCountry("Atlantis"))
	})

	t.Run("every catalog zone resolves", func(t *testing.T) {
		provider := timezone.NewIANAProvider()
		for _, opt := range timezone.Options {
			_, err := provider.Rules(opt.Name)
			require.NoError(t, err, "catalog zone %s", opt.Name)
		}
	})
}

func TestOffsetAt(t *testing.T) {
	e := newEngine()
	jan := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	jul := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	offset, err := e.OffsetAt("Asia/Tokyo", jan)
	require.NoError(t, err)
	require.Equal(t, "+09:00", offset)

	offset, err = e.OffsetAt("America/New_York", jan)
	require.NoError(t, err)
	require.Equal(t, "-05:00", offset)

	offset, err = e.OffsetAt("America/New_York", jul)
	require.NoError(t, err)
	require.Equal(t, "-04:00", offset)

	_, err = e.OffsetAt("Not/AZone", jan)
	require.ErrorIs(t, err, timezone.ErrInvalidTimezone)
}

func TestCurrentTimeIn(t *testing.T) {
	e := newEngine()

	now, err := e.CurrentTimeIn("Asia/Tokyo")
	require.NoError(t, err)
	_, err = time.Parse("2006-01-02 15:04:05", now)
	require.NoError(t, err)

	_, err = e.CurrentTimeIn("Not/AZone")
	require.ErrorIs(t, err, timezone.ErrInvalidTimezone)
}
