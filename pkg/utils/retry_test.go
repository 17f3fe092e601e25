package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/belgahub/hub/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	t.Parallel()

	fastOpts := utils.RetryOptions{
		MaxElapsedTime:  time.Second,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxRetries:      3,
	}

	t.Run("succeeds first try", func(t *testing.T) {
		t.Parallel()

		calls := 0
		result, err := utils.WithRetry(context.Background(), func() (string, error) {
			calls++
			return "ok", nil
		}, fastOpts)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		result, err := utils.WithRetry(context.Background(), func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		}, fastOpts)

		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		failure := errors.New("persistent")
		_, err := utils.WithRetry(context.Background(), func() (int, error) {
			return 0, failure
		}, fastOpts)

		require.ErrorIs(t, err, failure)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := utils.WithRetry(ctx, func() (int, error) {
			return 0, errors.New("transient")
		}, fastOpts)

		require.Error(t, err)
	})
}
