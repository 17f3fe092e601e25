// Package feed maintains a user's in-memory notification feed: capped
// initial load, live inserts from the change feed, optimistic read
// state, and transient toasts.
package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/belgahub/hub/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationStore is the persistence surface the controller syncs
// read state against.
type NotificationStore interface {
	ListFeed(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// Subscriber delivers live inserts for a user. The returned cancel
// function stops delivery.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID, handler func(*types.Notification)) func()
}

// Controller owns one user's feed for the lifetime of a page session.
// Construct it at page load and Close it at navigation.
type Controller struct {
	userID        uuid.UUID
	store         NotificationStore
	subscriber    Subscriber
	loadLimit     int
	toastDuration time.Duration
	logger        *zap.Logger

	mu            sync.Mutex
	notifications []*types.Notification
	toasts        []*Toast
	pendingSync   map[int64]struct{}
	loaded        bool
	unsubscribe   func()
}

// NewController creates a feed controller for one user.
func NewController(
	userID uuid.UUID,
	store NotificationStore,
	subscriber Subscriber,
	cfg *config.Feed,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		userID:        userID,
		store:         store,
		subscriber:    subscriber,
		loadLimit:     cfg.LoadLimit,
		toastDuration: time.Duration(cfg.ToastDuration) * time.Millisecond,
		logger:        logger.Named("feed"),
		pendingSync:   make(map[int64]struct{}),
	}
}

// Load fetches the persisted feed, newest first, capped at the
// configured limit. Empty feeds come back with the welcome entries the
// store substitutes, so the panel is never blank.
func (c *Controller) Load(ctx context.Context) ([]*types.Notification, error) {
	notifications, err := c.store.ListFeed(ctx, c.userID, c.loadLimit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.notifications = notifications
	c.loaded = true

	return slices.Clone(c.notifications), nil
}

// Start subscribes to live inserts. Call after the initial Load.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unsubscribe != nil {
		return
	}

	c.unsubscribe = c.subscriber.Subscribe(ctx, c.userID, c.OnLiveInsert)
}

// OnLiveInsert prepends a freshly delivered notification and spawns its
// toast. Inserts are delivered at least once, so entries already in the
// list are dropped by ID.
func (c *Controller) OnLiveInsert(notification *types.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.notifications {
		if existing.ID == notification.ID {
			return
		}
	}

	c.notifications = append([]*types.Notification{notification}, c.notifications...)

	toast := newToast(notification, c.toastDuration, c.removeToast)
	c.toasts = append(c.toasts, toast)

	c.logger.Debug("Live notification inserted",
		zap.Int64("notificationID", notification.ID),
		zap.String("type", string(notification.Type)))
}

func (c *Controller) removeToast(toast *Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.toasts = slices.DeleteFunc(c.toasts, func(t *Toast) bool { return t == toast })
}

// MarkRead flips a notification's read flag immediately and then
// persists it. A failed persistence write is remembered for RetrySync
// instead of rolling the local flag back.
func (c *Controller) MarkRead(ctx context.Context, notificationID int64) {
	c.mu.Lock()

	for _, notification := range c.notifications {
		if notification.ID == notificationID {
			notification.Read = true

			break
		}
	}
	c.mu.Unlock()

	if err := c.store.MarkRead(ctx, c.userID, notificationID); err != nil {
		c.logger.Warn("Failed to persist read state, will retry",
			zap.Int64("notificationID", notificationID),
			zap.Error(err))

		c.mu.Lock()
		c.pendingSync[notificationID] = struct{}{}
		c.mu.Unlock()
	}
}

// MarkAllRead flips every local flag and issues one bulk update.
func (c *Controller) MarkAllRead(ctx context.Context) {
	c.mu.Lock()

	for _, notification := range c.notifications {
		notification.Read = true
	}
	c.pendingSync = make(map[int64]struct{})
	c.mu.Unlock()

	if err := c.store.MarkAllRead(ctx, c.userID); err != nil {
		c.logger.Warn("Failed to persist bulk read state", zap.Error(err))
	}
}

// RetrySync replays failed read-state writes with backoff. Entries that
// still fail stay pending for the next call.
func (c *Controller) RetrySync(ctx context.Context) {
	c.mu.Lock()
	pending := make([]int64, 0, len(c.pendingSync))
	for id := range c.pendingSync {
		pending = append(pending, id)
	}
	c.mu.Unlock()

	for _, id := range pending {
		_, err := utils.WithRetry(ctx, func() (struct{}, error) {
			return struct{}{}, c.store.MarkRead(ctx, c.userID, id)
		}, utils.GetSyncRetryOptions())
		if err != nil {
			c.logger.Warn("Read state still out of sync",
				zap.Int64("notificationID", id),
				zap.Error(err))

			continue
		}

		c.mu.Lock()
		delete(c.pendingSync, id)
		c.mu.Unlock()
	}
}

// Badge returns the unread count of the in-memory list.
func (c *Controller) Badge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0

	for _, notification := range c.notifications {
		if !notification.Read {
			count++
		}
	}

	return count
}

// Notifications returns a copy of the current in-memory feed.
func (c *Controller) Notifications() []*types.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.notifications)
}

// Toasts returns the currently visible toasts.
func (c *Controller) Toasts() []*Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.toasts)
}

// Loaded reports whether the initial fetch has completed.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}

// Close stops the live subscription and dismisses active toasts.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	toasts := slices.Clone(c.toasts)
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	for _, toast := range toasts {
		toast.Dismiss()
	}
}
