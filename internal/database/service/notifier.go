package service

import (
	"context"

	"github.com/belgahub/hub/internal/database/types"
)

// Notifier queues notifications for asynchronous delivery.
// Services treat delivery as best-effort: enqueue failures are logged
// and never fail the triggering operation.
type Notifier interface {
	Enqueue(ctx context.Context, notification *types.Notification) error
}

// noopNotifier drops all notifications. Used until a real notifier is wired.
type noopNotifier struct{}

func (noopNotifier) Enqueue(context.Context, *types.Notification) error {
	return nil
}
