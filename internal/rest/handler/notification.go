package handler

import (
	"net/http"
	"strconv"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// NotificationHandler serves the notification feed endpoints.
type NotificationHandler struct {
	db     database.Client
	cfg    *config.Feed
	logger *zap.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(db database.Client, cfg *config.Feed, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Feed returns the caller's newest notifications and unread count.
func (h *NotificationHandler) Feed(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	notifications, err := h.db.Service().Notification().ListFeed(req.Context(), current.UserID, h.cfg.LoadLimit)
	if err != nil {
		h.logger.Error("Failed to load feed", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	unread, err := h.db.Service().Notification().CountUnread(req.Context(), current.UserID)
	if err != nil {
		h.logger.Error("Failed to count unread", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, restTypes.FeedResponse{
		Notifications: notifications,
		Unread:        unread,
	})
}

// MarkRead flips one notification to read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, req bunrouter.Request) error {
	notificationID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid notification id")
	}

	current := session.FromContext(req.Context())

	if err := h.db.Service().Notification().MarkRead(req.Context(), current.UserID, notificationID); err != nil {
		h.logger.Error("Failed to mark notification read", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// MarkAllRead flips the caller's entire feed to read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	if err := h.db.Service().Notification().MarkAllRead(req.Context(), current.UserID); err != nil {
		h.logger.Error("Failed to mark all read", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// Badge returns the unread count.
func (h *NotificationHandler) Badge(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	unread, err := h.db.Service().Notification().CountUnread(req.Context(), current.UserID)
	if err != nil {
		h.logger.Error("Failed to count unread", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, restTypes.BadgeResponse{Unread: unread})
}
