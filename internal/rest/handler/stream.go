package handler

import (
	"net/http"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/feed"
	"github.com/belgahub/hub/internal/gateway"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// StreamHandler pushes live notifications over server-sent events.
// Connections are bounded by the server's write timeout; clients
// reconnect and the feed controller deduplicates redelivered inserts
// by ID, so drops are safe.
type StreamHandler struct {
	db         database.Client
	subscriber *gateway.Subscriber
	cfg        *config.Feed
	logger     *zap.Logger
}

// NewStreamHandler creates a new notification stream handler.
func NewStreamHandler(
	db database.Client, subscriber *gateway.Subscriber, cfg *config.Feed, logger *zap.Logger,
) *StreamHandler {
	return &StreamHandler{
		db:         db,
		subscriber: subscriber,
		cfg:        cfg,
		logger:     logger,
	}
}

// Stream sends the initial feed followed by live inserts as SSE events.
func (h *StreamHandler) Stream(w http.ResponseWriter, req bunrouter.Request) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return writeError(w, http.StatusInternalServerError, "streaming not supported")
	}

	current := session.FromContext(req.Context())
	ctx := req.Context()

	controller := feed.NewController(
		current.UserID, h.db.Service().Notification(), h.subscriber, h.cfg, h.logger)
	defer controller.Close()

	notifications, err := controller.Load(ctx)
	if err != nil {
		h.logger.Error("Failed to load feed for stream", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	// Feed events carry the controller's deduplicated view; the raw
	// insert also lands in a channel so this loop can forward it
	inserts := make(chan *types.Notification, 16)

	cancel := h.subscriber.Subscribe(ctx, current.UserID, func(n *types.Notification) {
		controller.OnLiveInsert(n)

		select {
		case inserts <- n:
		default:
			// Slow consumer; the entry is still in the controller and
			// the persisted feed, so dropping the push is safe
		}
	})
	defer cancel()

	if err := writeEvent(w, "feed", notifications); err != nil {
		return err
	}

	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-inserts:
			if err := writeEvent(w, "insert", n); err != nil {
				return err
			}

			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, payload any) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte("event: " + event + "\ndata: " + string(data) + "\n\n"))

	return err
}
