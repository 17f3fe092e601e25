package models

import (
	"context"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// NotificationModel handles database operations for user notifications.
type NotificationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewNotification creates a new notification model.
func NewNotification(db *bun.DB, logger *zap.Logger) *NotificationModel {
	return &NotificationModel{
		db:     db,
		logger: logger.Named("db_notification"),
	}
}

// InsertNotification stores a new notification.
func (r *NotificationModel) InsertNotification(ctx context.Context, notification *types.Notification) error {
	notification.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(notification).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// GetUserNotifications retrieves a user's newest notifications up to limit.
func (r *NotificationModel) GetUserNotifications(
	ctx context.Context, userID uuid.UUID, limit int,
) ([]*types.Notification, error) {
	var notifications []*types.Notification

	err := r.db.NewSelect().
		Model(&notifications).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read.
// The user ID guard prevents marking another user's notification.
func (r *NotificationModel) MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	result, err := r.db.NewUpdate().
		Model((*types.Notification)(nil)).
		Set("read = true").
		Where("id = ?", notificationID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread notification for a user as read.
func (r *NotificationModel) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*types.Notification)(nil)).
		Set("read = true").
		Where("user_id = ?", userID).
		Where("read = false").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

// CountAll returns the total number of stored notifications for a user.
func (r *NotificationModel) CountAll(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.Notification)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationModel) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.Notification)(nil)).
		Where("user_id = ?", userID).
		Where("read = false").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
