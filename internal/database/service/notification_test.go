package service

import (
	"context"
	"testing"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeNotificationStore serves canned rows so the welcome fallback can
// be exercised without a database.
type fakeNotificationStore struct {
	rows       []*types.Notification
	markedRead []int64
}

func (f *fakeNotificationStore) GetUserNotifications(
	_ context.Context, _ uuid.UUID, limit int,
) ([]*types.Notification, error) {
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}

	return f.rows, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, _ uuid.UUID, notificationID int64) error {
	f.markedRead = append(f.markedRead, notificationID)
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, _ uuid.UUID) error {
	for _, row := range f.rows {
		row.Read = true
	}

	return nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, _ uuid.UUID) (int, error) {
	count := 0

	for _, row := range f.rows {
		if !row.Read {
			count++
		}
	}

	return count, nil
}

func (f *fakeNotificationStore) CountAll(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.rows), nil
}

func TestEmptyFeedGetsWelcomeEntries(t *testing.T) {
	t.Parallel()

	store := &fakeNotificationStore{}
	svc := NewNotification(store, zap.NewNop())
	userID := uuid.New()

	feed, err := svc.ListFeed(context.Background(), userID, 30)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	for _, entry := range feed {
		assert.False(t, entry.Read, "welcome entries start unread")
		assert.Negative(t, entry.ID, "welcome entries use synthetic IDs")
		assert.Equal(t, userID, entry.UserID)
	}

	// The badge counts what the panel shows
	unread, err := svc.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)
}

func TestStoredFeedSkipsWelcomeEntries(t *testing.T) {
	t.Parallel()

	store := &fakeNotificationStore{
		rows: []*types.Notification{
			{ID: 1, Read: true},
			{ID: 2, Read: false},
		},
	}
	svc := NewNotification(store, zap.NewNop())
	userID := uuid.New()

	feed, err := svc.ListFeed(context.Background(), userID, 30)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Positive(t, feed[0].ID)

	unread, err := svc.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestAllReadFeedHasZeroBadge(t *testing.T) {
	t.Parallel()

	store := &fakeNotificationStore{
		rows: []*types.Notification{{ID: 1, Read: true}},
	}
	svc := NewNotification(store, zap.NewNop())

	unread, err := svc.CountUnread(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, unread, "read rows never fall back to the welcome count")
}

func TestMarkReadIgnoresWelcomeEntries(t *testing.T) {
	t.Parallel()

	store := &fakeNotificationStore{}
	svc := NewNotification(store, zap.NewNop())

	err := svc.MarkRead(context.Background(), uuid.New(), -1)
	require.NoError(t, err)
	assert.Empty(t, store.markedRead, "synthetic IDs never reach the store")
}
