package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/dispatch"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*dispatch.Queue, func()) {
	t.Helper()

	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	// Create test logger
	logger := zap.NewNop()

	queue := dispatch.NewQueue(client, logger)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return queue, cleanup
}

// recordingSink captures delivered notifications.
type recordingSink struct {
	mu        sync.Mutex
	delivered []*types.Notification
	failures  int
}

func (s *recordingSink) Deliver(_ context.Context, n *types.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures > 0 {
		s.failures--
		return errors.New("delivery failed")
	}

	s.delivered = append(s.delivered, n)

	return nil
}

func (s *recordingSink) deliveredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.delivered)
}

func testNotification(userID uuid.UUID, title string) *types.Notification {
	return &types.Notification{
		UserID:  userID,
		Type:    enum.NotificationTypeInfo,
		Title:   title,
		Message: "mensagem de teste",
	}
}

func TestQueueEnqueueDequeue(t *testing.T) {
	t.Parallel()

	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()
	userID := uuid.New()

	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "primeira")))
	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "segunda")))
	assert.Equal(t, 2, queue.Len(ctx))

	entries, err := queue.Dequeue(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Entries stay queued until removed
	assert.Equal(t, 2, queue.Len(ctx))

	require.NoError(t, queue.Remove(ctx, entries[0]))
	assert.Equal(t, 1, queue.Len(ctx))
}

func TestQueueDequeueRespectsBatchSize(t *testing.T) {
	t.Parallel()

	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()
	userID := uuid.New()

	for i := range 5 {
		require.NoError(t, queue.Enqueue(ctx, testNotification(userID, string(rune('a'+i)))))
	}

	entries, err := queue.Dequeue(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestDispatcherDeliversAndRemoves(t *testing.T) {
	t.Parallel()

	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	userID := uuid.New()
	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "entrega")))

	sink := &recordingSink{}
	dispatcher := dispatch.NewDispatcher(queue, sink, &config.Dispatch{
		Workers:      2,
		BatchSize:    10,
		PollInterval: 10,
	}, zap.NewNop())

	go dispatcher.Run(ctx)

	require.Eventually(t, func() bool {
		return sink.deliveredCount() == 1 && queue.Len(context.Background()) == 0
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, "entrega", sink.delivered[0].Title)
	assert.Equal(t, userID, sink.delivered[0].UserID)
}

func TestDispatcherRetriesFailedDelivery(t *testing.T) {
	t.Parallel()

	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	userID := uuid.New()
	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "persistente")))

	// First delivery attempt fails; the retry succeeds
	sink := &recordingSink{failures: 1}
	dispatcher := dispatch.NewDispatcher(queue, sink, &config.Dispatch{
		Workers:      1,
		BatchSize:    5,
		PollInterval: 10,
	}, zap.NewNop())

	go dispatcher.Run(ctx)

	require.Eventually(t, func() bool {
		return sink.deliveredCount() == 1 && queue.Len(context.Background()) == 0
	}, 10*time.Second, 20*time.Millisecond)
}

// rejectingSink permanently fails entries whose title matches, and
// records everything else.
type rejectingSink struct {
	recordingSink
	rejectTitle string
}

func (s *rejectingSink) Deliver(ctx context.Context, n *types.Notification) error {
	if n.Title == s.rejectTitle {
		return errors.New("permanent delivery failure")
	}

	return s.recordingSink.Deliver(ctx, n)
}

func TestDispatcherDropsUndeliverableEntries(t *testing.T) {
	t.Parallel()

	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	userID := uuid.New()

	// Enough permanently failing entries to fill a whole batch, with a
	// healthy one enqueued behind them
	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "rejeitada")))
	require.NoError(t, queue.Enqueue(ctx, testNotification(uuid.New(), "rejeitada")))
	require.NoError(t, queue.Enqueue(ctx, testNotification(userID, "entregavel")))

	sink := &rejectingSink{rejectTitle: "rejeitada"}
	dispatcher := dispatch.NewDispatcher(queue, sink, &config.Dispatch{
		Workers:      2,
		BatchSize:    2,
		PollInterval: 10,
	}, zap.NewNop())

	go dispatcher.Run(ctx)

	// Exhausted entries are dropped, so the entry behind them still
	// gets through and the queue fully drains
	require.Eventually(t, func() bool {
		return sink.deliveredCount() == 1 && queue.Len(context.Background()) == 0
	}, 60*time.Second, 100*time.Millisecond)

	assert.Equal(t, "entregavel", sink.delivered[0].Title)
}
