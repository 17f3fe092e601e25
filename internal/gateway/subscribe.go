package gateway

import (
	"context"
	"errors"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/dispatch"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Subscriber delivers live notification inserts to connected feeds
// over Redis pub/sub.
type Subscriber struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewSubscriber creates a subscriber on the given Redis client.
func NewSubscriber(client rueidis.Client, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		client: client,
		logger: logger.Named("subscriber"),
	}
}

// Subscribe starts listening for a user's live inserts and invokes
// handler for each one. The returned cancel function stops the
// subscription; it must be called on logout.
func (s *Subscriber) Subscribe(
	ctx context.Context, userID uuid.UUID, handler func(*types.Notification),
) func() {
	ctx, cancel := context.WithCancel(ctx)
	channel := dispatch.Channel(userID.String())

	go func() {
		err := s.client.Receive(ctx,
			s.client.B().Subscribe().Channel(channel).Build(),
			func(msg rueidis.PubSubMessage) {
				var notification types.Notification
				if err := sonic.Unmarshal([]byte(msg.Message), &notification); err != nil {
					s.logger.Warn("Dropping malformed live notification",
						zap.String("channel", channel),
						zap.Error(err))

					return
				}

				handler(&notification)
			},
		)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("Subscription ended unexpectedly",
				zap.String("channel", channel),
				zap.Error(err))
		}
	}()

	return cancel
}
