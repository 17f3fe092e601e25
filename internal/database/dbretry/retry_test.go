package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/belgahub/hub/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	assert.False(t, dbretry.IsRetryableError(nil))
	assert.False(t, dbretry.IsRetryableError(errors.New("duplicate key value violates unique constraint")))
	assert.True(t, dbretry.IsRetryableError(errors.New("read tcp: connection reset by peer")))
	assert.True(t, dbretry.IsRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, dbretry.IsRetryableError(context.DeadlineExceeded))
}

func TestOperationStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := dbretry.Operation(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, errors.New("syntax error")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
