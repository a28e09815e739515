package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/timeutil"
)

func TestStoreBestPrecedence(t *testing.T) {
	t.Run("empty store has no credential", func(t *testing.T) {
		s := NewStore(nil)
		_, ok := s.Best()
		assert.False(t, ok)
	})

	t.Run("app token when no user token", func(t *testing.T) {
		s := NewStore(nil)
		s.SetApp("app-tok")

		cred, ok := s.Best()
		require.True(t, ok)
		assert.Equal(t, domain.AppToken, cred.Kind)
		assert.Equal(t, "app-tok", cred.Value)
	})

	t.Run("user token outranks app token", func(t *testing.T) {
		s := NewStore(nil)
		s.SetApp("app-tok")
		s.SetUser("user-tok")

		cred, ok := s.Best()
		require.True(t, ok)
		assert.Equal(t, domain.UserToken, cred.Kind)
		assert.Equal(t, "user-tok", cred.Value)
	})
}

func TestStoreClearUser(t *testing.T) {
	s := NewStore(nil)
	s.SetApp("app-tok")
	s.SetUser("user-tok")

	s.ClearUser()

	// Logout falls back to the app credential.
	cred, ok := s.Best()
	require.True(t, ok)
	assert.Equal(t, domain.AppToken, cred.Kind)
}

func TestStoreClear(t *testing.T) {
	s := NewStore(nil)
	s.SetApp("app-tok")
	s.SetUser("user-tok")

	s.Clear()

	_, ok := s.Best()
	assert.False(t, ok)
	_, ok = s.App()
	assert.False(t, ok)
}

func TestStoreStampsAcquisitionTime(t *testing.T) {
	now := time.Date(2025, 9, 21, 10, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(now)
	s := NewStore(clock)

	cred := s.SetApp("app-tok")
	assert.Equal(t, now, cred.AcquiredAt)
}

func TestStoreRestoreKeepsAcquisitionTime(t *testing.T) {
	acquired := time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)
	s := NewStore(nil)

	s.Restore(domain.Credential{Kind: domain.AppToken, Value: "old-tok", AcquiredAt: acquired})

	cred, ok := s.App()
	require.True(t, ok)
	assert.Equal(t, "old-tok", cred.Value)
	assert.Equal(t, acquired, cred.AcquiredAt)
}
