package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Get(ctx, "missing")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("set then get", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, KeyAppToken, []byte("value")))

		got, err := m.Get(ctx, KeyAppToken)
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", []byte("v1")))
		require.NoError(t, m.Set(ctx, "k", []byte("v2")))

		got, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("clear removes the key", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", []byte("v")))
		require.NoError(t, m.Clear(ctx, "k"))

		_, err := m.Get(ctx, "k")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("stored value is isolated from caller mutation", func(t *testing.T) {
		m := NewMemory()
		original := []byte("value")
		require.NoError(t, m.Set(ctx, "k", original))
		original[0] = 'X'

		got, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), got)

		got[0] = 'Y'
		again, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), again)
	})
}
