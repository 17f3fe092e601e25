package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// queueKey is the Redis sorted set holding pending notifications.
// Scores are enqueue timestamps so delivery preserves FIFO order.
const queueKey = "dispatch:notifications"

// Queue buffers notifications in Redis between the services that
// produce them and the workers that deliver them.
type Queue struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewQueue creates a queue backed by the given Redis client.
func NewQueue(client rueidis.Client, logger *zap.Logger) *Queue {
	return &Queue{
		client: client,
		logger: logger.Named("dispatch_queue"),
	}
}

// Enqueue adds a notification to the delivery queue.
// Implements the services' Notifier interface.
func (q *Queue) Enqueue(ctx context.Context, notification *types.Notification) error {
	payload, err := sonic.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = q.client.Do(ctx,
		q.client.B().Zadd().Key(queueKey).ScoreMember().
			ScoreMember(float64(time.Now().UnixNano()), string(payload)).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	return nil
}

// Dequeue returns up to batchSize pending entries in enqueue order.
// Entries stay queued until Remove is called, so a crashed worker
// never loses them.
func (q *Queue) Dequeue(ctx context.Context, batchSize int) ([]string, error) {
	entries, err := q.client.Do(ctx,
		q.client.B().Zrange().Key(queueKey).Min("0").Max(strconv.Itoa(batchSize-1)).Build(),
	).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue notifications: %w", err)
	}

	return entries, nil
}

// Remove drops a delivered entry from the queue.
func (q *Queue) Remove(ctx context.Context, entry string) error {
	err := q.client.Do(ctx,
		q.client.B().Zrem().Key(queueKey).Member(entry).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}

	return nil
}

// Len returns the number of pending entries.
func (q *Queue) Len(ctx context.Context) int {
	count, err := q.client.Do(ctx, q.client.B().Zcard().Key(queueKey).Build()).ToInt64()
	if err != nil {
		q.logger.Error("Failed to get queue length", zap.Error(err))
		return 0
	}

	return int(count)
}
