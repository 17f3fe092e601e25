package dispatch

import (
	"context"
	"fmt"

	"github.com/belgahub/hub/internal/database/dbretry"
	"github.com/belgahub/hub/internal/database/models"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
)

// ChannelPrefix namespaces the pub/sub channels carrying live inserts.
// Channels are formatted as "notifications:{userID}".
const ChannelPrefix = "notifications:"

// Channel returns the pub/sub channel name for a user's live feed.
func Channel(userID string) string {
	return ChannelPrefix + userID
}

// Sink receives notifications drained from the queue.
type Sink interface {
	Deliver(ctx context.Context, notification *types.Notification) error
}

// StoreSink persists notifications and announces them on the owner's
// pub/sub channel so connected feeds update live.
type StoreSink struct {
	notifications *models.NotificationModel
	client        rueidis.Client
}

// NewStoreSink creates the production sink.
func NewStoreSink(notifications *models.NotificationModel, client rueidis.Client) *StoreSink {
	return &StoreSink{
		notifications: notifications,
		client:        client,
	}
}

// Deliver stores the notification then publishes it.
// The insert is retried on transient database failures; a publish
// failure is not fatal since the stored row is picked up on next load.
func (s *StoreSink) Deliver(ctx context.Context, notification *types.Notification) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		return s.notifications.InsertNotification(ctx, notification)
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	payload, err := sonic.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// Publish is best-effort: a missed live event is recovered on the
	// next feed load from the stored row.
	_ = s.client.Do(ctx,
		s.client.B().Publish().
			Channel(Channel(notification.UserID.String())).
			Message(string(payload)).Build(),
	).Error()

	return nil
}
