package feed_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/feed"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory NotificationStore with injectable failures.
type fakeStore struct {
	mu            sync.Mutex
	notifications []*types.Notification
	markedRead    []int64
	markAllCalls  int
	failMarkRead  int
}

func (s *fakeStore) ListFeed(_ context.Context, _ uuid.UUID, limit int) ([]*types.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notifications) > limit {
		return s.notifications[:limit], nil
	}

	return s.notifications, nil
}

func (s *fakeStore) MarkRead(_ context.Context, _ uuid.UUID, notificationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failMarkRead > 0 {
		s.failMarkRead--

		return errors.New("connection reset")
	}

	s.markedRead = append(s.markedRead, notificationID)

	return nil
}

func (s *fakeStore) MarkAllRead(_ context.Context, _ uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markAllCalls++

	return nil
}

// fakeSubscriber hands the registered handler back to the test.
type fakeSubscriber struct {
	mu        sync.Mutex
	handler   func(*types.Notification)
	cancelled bool
}

func (s *fakeSubscriber) Subscribe(
	_ context.Context, _ uuid.UUID, handler func(*types.Notification),
) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handler = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.cancelled = true
	}
}

func (s *fakeSubscriber) push(n *types.Notification) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()

	handler(n)
}

func notification(id int64, read bool) *types.Notification {
	return &types.Notification{
		ID:      id,
		Type:    enum.NotificationTypeInfo,
		Title:   "Novo voto recebido",
		Message: "Seu software recebeu um voto positivo.",
		Read:    read,
	}
}

func setupController(t *testing.T, store *fakeStore, subscriber *fakeSubscriber) *feed.Controller {
	t.Helper()

	cfg := &config.Feed{LoadLimit: 30, ToastDuration: 50}

	controller := feed.NewController(uuid.New(), store, subscriber, cfg, zap.NewNop())
	t.Cleanup(controller.Close)

	return controller
}

func TestLoadCapsAtLimit(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	for i := int64(1); i <= 40; i++ {
		store.notifications = append(store.notifications, notification(i, false))
	}

	controller := setupController(t, store, &fakeSubscriber{})

	loaded, err := controller.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 30)
	assert.True(t, controller.Loaded())
	assert.Equal(t, 30, controller.Badge())
}

func TestLiveInsertPrependsAndDeduplicates(t *testing.T) {
	t.Parallel()

	store := &fakeStore{notifications: []*types.Notification{notification(1, true)}}
	subscriber := &fakeSubscriber{}
	controller := setupController(t, store, subscriber)

	_, err := controller.Load(context.Background())
	require.NoError(t, err)

	controller.Start(context.Background())

	subscriber.push(notification(2, false))
	// Redelivery of the same insert must not duplicate the entry
	subscriber.push(notification(2, false))

	list := controller.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, 1, controller.Badge())
}

func TestToastAutoDismiss(t *testing.T) {
	t.Parallel()

	subscriber := &fakeSubscriber{}
	controller := setupController(t, &fakeStore{}, subscriber)
	controller.Start(context.Background())

	subscriber.push(notification(5, false))
	require.Len(t, controller.Toasts(), 1)

	assert.Eventually(t, func() bool {
		return len(controller.Toasts()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestToastManualDismiss(t *testing.T) {
	t.Parallel()

	subscriber := &fakeSubscriber{}
	controller := setupController(t, &fakeStore{}, subscriber)
	controller.Start(context.Background())

	subscriber.push(notification(6, false))

	toasts := controller.Toasts()
	require.Len(t, toasts, 1)

	toasts[0].Dismiss()
	toasts[0].Dismiss() // second dismissal is a no-op
	assert.Empty(t, controller.Toasts())
}

func TestMarkReadIsOptimistic(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		notifications: []*types.Notification{notification(1, false), notification(2, false)},
		failMarkRead:  1,
	}
	controller := setupController(t, store, &fakeSubscriber{})

	_, err := controller.Load(context.Background())
	require.NoError(t, err)

	// Persistence fails but the local flag flips anyway
	controller.MarkRead(context.Background(), 1)
	assert.Equal(t, 1, controller.Badge())
	assert.Empty(t, store.markedRead)

	// The failed write is replayed on the next sync
	controller.RetrySync(context.Background())
	assert.Equal(t, []int64{1}, store.markedRead)
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		notifications: []*types.Notification{notification(1, false), notification(2, false)},
	}
	controller := setupController(t, store, &fakeSubscriber{})

	_, err := controller.Load(context.Background())
	require.NoError(t, err)

	controller.MarkAllRead(context.Background())
	assert.Equal(t, 0, controller.Badge())
	assert.Equal(t, 1, store.markAllCalls)
}

func TestCloseStopsSubscription(t *testing.T) {
	t.Parallel()

	subscriber := &fakeSubscriber{}
	controller := setupController(t, &fakeStore{}, subscriber)
	controller.Start(context.Background())

	controller.Close()

	subscriber.mu.Lock()
	defer subscriber.mu.Unlock()
	assert.True(t, subscriber.cancelled)
}
