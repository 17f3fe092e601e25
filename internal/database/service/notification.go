package service

import (
	"context"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notificationStore is the persistence surface the service reads and
// writes; *models.NotificationModel implements it.
type notificationStore interface {
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	CountAll(ctx context.Context, userID uuid.UUID) (int, error)
}

// Synthetic IDs for the welcome entries shown to users with an empty feed.
// Negative so they can never collide with stored notifications.
const (
	welcomeNotificationID = -1
	exploreNotificationID = -2
)

// NotificationService handles feed reads and read-state changes.
type NotificationService struct {
	notifications notificationStore
	logger        *zap.Logger
}

// NewNotification creates a new notification service.
func NewNotification(notifications notificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger.Named("notification_service"),
	}
}

// ListFeed returns the user's newest notifications up to limit.
// Users with an empty feed get a pair of synthetic welcome entries
// so the panel is never blank.
func (s *NotificationService) ListFeed(
	ctx context.Context, userID uuid.UUID, limit int,
) ([]*types.Notification, error) {
	notifications, err := s.notifications.GetUserNotifications(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if len(notifications) == 0 {
		return welcomeFeed(userID), nil
	}

	return notifications, nil
}

// MarkRead marks a single notification as read.
// Synthetic welcome entries are accepted and ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	if notificationID < 0 {
		return nil
	}

	return s.notifications.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marks the user's entire feed as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

// CountUnread returns the unread badge count for a user.
// Users with an empty feed see the welcome entries, which are unread,
// so the badge counts them too — the feed and the badge always agree.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if unread > 0 {
		return unread, nil
	}

	total, err := s.notifications.CountAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	if total == 0 {
		return len(welcomeFeed(userID)), nil
	}

	return 0, nil
}

// welcomeFeed builds the synthetic entries for first-time users.
func welcomeFeed(userID uuid.UUID) []*types.Notification {
	now := time.Now()

	return []*types.Notification{
		{
			ID:        welcomeNotificationID,
			UserID:    userID,
			Type:      enum.NotificationTypeInfo,
			Title:     "Bem-vindo ao Belga Hub!",
			Message:   "Sua conta foi criada com sucesso.",
			CreatedAt: now,
		},
		{
			ID:        exploreNotificationID,
			UserID:    userID,
			Type:      enum.NotificationTypeSuccess,
			Title:     "Explore nossos softwares",
			Message:   "Encontre as melhores soluções para sua empresa no catálogo.",
			CreatedAt: now.Add(-time.Minute),
		},
	}
}
