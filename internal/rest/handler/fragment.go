package handler

import (
	"errors"
	"net/http"

	"github.com/belgahub/hub/internal/catalog"
	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/render"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// FragmentHandler serves pre-rendered HTML fragments for pages that
// swap markup in place instead of rendering client side.
type FragmentHandler struct {
	db       database.Client
	renderer *render.Renderer
	cfg      *config.Feed
	logger   *zap.Logger
}

// NewFragmentHandler creates a new fragment handler.
func NewFragmentHandler(
	db database.Client, renderer *render.Renderer, cfg *config.Feed, logger *zap.Logger,
) *FragmentHandler {
	return &FragmentHandler{
		db:       db,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// SoftwareCard returns the rendered catalog card for one listing.
func (h *FragmentHandler) SoftwareCard(w http.ResponseWriter, req bunrouter.Request) error {
	detail, err := h.db.Service().Software().GetDetail(req.Context(), req.Param("slug"), viewerID(req))
	if err != nil {
		if errors.Is(err, types.ErrSoftwareNotFound) {
			return writeError(w, http.StatusNotFound, "software not found")
		}

		h.logger.Error("Failed to load software for fragment", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	markup, err := h.renderer.SoftwareCard(detail)
	if err != nil {
		h.logger.Error("Failed to render software card", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return writeHTML(w, markup)
}

// NotificationList returns the caller's feed as rendered items.
func (h *FragmentHandler) NotificationList(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	notifications, err := h.db.Service().Notification().ListFeed(req.Context(), current.UserID, h.cfg.LoadLimit)
	if err != nil {
		h.logger.Error("Failed to load feed for fragment", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	var markup string

	for _, notification := range notifications {
		item, err := h.renderer.NotificationItem(notification)
		if err != nil {
			h.logger.Error("Failed to render notification item", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}

		markup += item
	}

	return writeHTML(w, markup)
}

// PartnershipList returns the active partnership offers as rendered
// cards, optionally narrowed by the ?type= query parameter.
func (h *FragmentHandler) PartnershipList(w http.ResponseWriter, req bunrouter.Request) error {
	partnerships, err := h.db.Service().Partnership().ListActive(req.Context())
	if err != nil {
		h.logger.Error("Failed to load partnerships for fragment", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	if ptype := enum.PartnershipType(req.URL.Query().Get("type")); ptype != "" {
		partnerships = catalog.FilterPartnerships(partnerships, ptype)
	}

	var markup string

	for _, partnership := range partnerships {
		card, err := h.renderer.PartnershipCard(partnership)
		if err != nil {
			h.logger.Error("Failed to render partnership card", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}

		markup += card
	}

	return writeHTML(w, markup)
}

func writeHTML(w http.ResponseWriter, markup string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err := w.Write([]byte(markup))

	return err
}
