package dispatch

import (
	"context"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/belgahub/hub/pkg/utils"
	"github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Dispatcher drains the notification queue and delivers entries to a sink.
// Deliveries run concurrently with per-entry retry; an entry is only
// removed from the queue after successful delivery.
type Dispatcher struct {
	queue        *Queue
	sink         Sink
	workers      int
	batchSize    int
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewDispatcher creates a dispatcher draining queue into sink.
func NewDispatcher(queue *Queue, sink Sink, cfg *config.Dispatch, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queue:        queue,
		sink:         sink,
		workers:      cfg.Workers,
		batchSize:    cfg.BatchSize,
		pollInterval: time.Duration(cfg.PollInterval) * time.Millisecond,
		logger:       logger.Named("dispatcher"),
	}
}

// Run polls the queue until the context is canceled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("Dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("batchSize", d.batchSize))

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Dispatcher stopped")
			return
		case <-ticker.C:
			d.drainOnce(ctx)
		}
	}
}

// drainOnce delivers one batch of queued notifications.
func (d *Dispatcher) drainOnce(ctx context.Context) {
	entries, err := d.queue.Dequeue(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("Failed to read queue", zap.Error(err))
		return
	}

	if len(entries) == 0 {
		return
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(d.workers)

	for _, entry := range entries {
		p.Go(func(ctx context.Context) error {
			d.deliver(ctx, entry)
			return nil
		})
	}

	_ = p.Wait()
}

// deliver decodes one queue entry, hands it to the sink with retries,
// and removes it on success. Undecodable entries are dropped so they
// cannot wedge the queue.
func (d *Dispatcher) deliver(ctx context.Context, entry string) {
	var notification types.Notification
	if err := sonic.Unmarshal([]byte(entry), &notification); err != nil {
		d.logger.Error("Dropping malformed queue entry", zap.Error(err))

		if err := d.queue.Remove(ctx, entry); err != nil {
			d.logger.Error("Failed to remove malformed entry", zap.Error(err))
		}

		return
	}

	_, err := utils.WithRetry(ctx, func() (struct{}, error) {
		return struct{}{}, d.sink.Deliver(ctx, &notification)
	}, utils.GetDeliveryRetryOptions())
	if err != nil {
		// The entry is dropped once its retries are exhausted. Leaving
		// it queued would let a batch of permanently failing entries
		// sit at the head of the sorted set and starve everything
		// enqueued after them.
		d.logger.Error("Dropping notification after exhausted retries",
			zap.String("userID", notification.UserID.String()),
			zap.Error(err))
	}

	if err := d.queue.Remove(ctx, entry); err != nil {
		d.logger.Error("Failed to remove queue entry", zap.Error(err))
	}
}
