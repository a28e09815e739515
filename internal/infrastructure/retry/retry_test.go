package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps test runs quick.
var fastConfig = Config{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2.0,
}

func TestDoWithResult(t *testing.T) {
	t.Run("returns first success", func(t *testing.T) {
		calls := 0
		got, err := DoWithResult(context.Background(), func() (string, error) {
			calls++
			return "ok", nil
		}, fastConfig)

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		got, err := DoWithResult(context.Background(), func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		}, fastConfig)

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts and returns last error", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("still broken")
		_, err := DoWithResult(context.Background(), func() (int, error) {
			calls++
			return 0, lastErr
		}, fastConfig)

		assert.Equal(t, lastErr, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("RetryIf short-circuits permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errors.New("permanent")
		_, err := DoWithResult(context.Background(), func() (int, error) {
			calls++
			return 0, permanent
		}, fastConfig.WithRetryIf(func(err error) bool { return false }))

		assert.Equal(t, permanent, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := DoWithResult(ctx, func() (int, error) {
			calls++
			cancel()
			return 0, errors.New("transient")
		}, fastConfig)

		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts treated as one", func(t *testing.T) {
		calls := 0
		_, err := DoWithResult(context.Background(), func() (int, error) {
			calls++
			return 0, errors.New("nope")
		}, Config{})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestDo(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
