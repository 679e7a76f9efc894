package session_test

import (
	"testing"
	"time"

	"github.com/s1290025/worldtime-calendar/internal/session"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	user := session.User{Name: "alice", Country: "Japan", Timezone: "Asia/Tokyo", Color: "#DC143C"}

	t.Run("save and get", func(t *testing.T) {
		s := session.NewStore()
		token := s.Save(user)
		require.NotEmpty(t, token)

		got, ok := s.Get(token)
		require.True(t, ok)
		require.Equal(t, user, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		s := session.NewStore()
		_, ok := s.Get("nope")
		require.False(t, ok)
		require.Zero(t, s.Remaining("nope"))
	})

	t.Run("delete", func(t *testing.T) {
		s := session.NewStore()
		token := s.Save(user)
		s.Delete(token)
		_, ok := s.Get(token)
		require.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		now := time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC)
		s := session.NewStoreWithClock(func() time.Time { return now })
		token := s.Save(user)

		require.Equal(t, session.Duration, s.Remaining(token))

		now = now.Add(session.Duration - time.Minute)
		_, ok := s.Get(token)
		require.True(t, ok)
		require.Equal(t, time.Minute, s.Remaining(token))

		now = now.Add(2 * time.Minute)
		_, ok = s.Get(token)
		require.False(t, ok)

		// Expired session was dropped; stays absent even if the clock rolls back.
		now = now.Add(-time.Hour)
		_, ok = s.Get(token)
		require.False(t, ok)
	})
}
