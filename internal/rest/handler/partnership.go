package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/belgahub/hub/internal/catalog"
	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/service"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// PartnershipHandler serves the partnership offer endpoints.
type PartnershipHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewPartnershipHandler creates a new partnership handler.
func NewPartnershipHandler(db database.Client, logger *zap.Logger) *PartnershipHandler {
	return &PartnershipHandler{
		db:     db,
		logger: logger,
	}
}

// List returns active offers, optionally narrowed to one type via the
// ?type= query parameter.
func (h *PartnershipHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	partnerships, err := h.db.Service().Partnership().ListActive(req.Context())
	if err != nil {
		h.logger.Error("Failed to list partnerships", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	if ptype := enum.PartnershipType(req.URL.Query().Get("type")); ptype != "" {
		if !ptype.Valid() {
			return writeError(w, http.StatusBadRequest, "invalid partnership type")
		}

		partnerships = catalog.FilterPartnerships(partnerships, ptype)
	}

	return bunrouter.JSON(w, partnerships)
}

// ListMine returns the caller's own offers, active or not.
func (h *PartnershipHandler) ListMine(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	partnerships, err := h.db.Service().Partnership().ListForOwner(req.Context(), current.UserID)
	if err != nil {
		h.logger.Error("Failed to list own partnerships", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, partnerships)
}

// Create publishes a new offer owned by the caller.
func (h *PartnershipHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.PartnershipDraft
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())
	partnership := body.Partnership()

	err := h.db.Service().Partnership().Create(req.Context(), current.UserID, partnership)
	if err != nil {
		if errors.Is(err, types.ErrInvalidPartnershipType) {
			return writeError(w, http.StatusBadRequest, "invalid partnership type")
		}

		h.logger.Error("Failed to create partnership", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, partnership)
}

// Update edits one of the caller's offers.
func (h *PartnershipHandler) Update(w http.ResponseWriter, req bunrouter.Request) error {
	partnershipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid partnership id")
	}

	var body restTypes.PartnershipDraft
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())
	partnership := body.Partnership()
	partnership.ID = partnershipID

	err = h.db.Service().Partnership().Update(req.Context(), current.UserID, partnership)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidPartnershipType):
			return writeError(w, http.StatusBadRequest, "invalid partnership type")
		case errors.Is(err, types.ErrPartnershipNotFound):
			return writeError(w, http.StatusNotFound, "partnership not found")
		default:
			h.logger.Error("Failed to update partnership", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}

	return bunrouter.JSON(w, partnership)
}

// Delete removes one of the caller's offers.
func (h *PartnershipHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	partnershipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid partnership id")
	}

	current := session.FromContext(req.Context())

	err = h.db.Service().Partnership().Delete(req.Context(), current.UserID, partnershipID)
	if err != nil {
		if errors.Is(err, types.ErrPartnershipNotFound) {
			return writeError(w, http.StatusNotFound, "partnership not found")
		}

		h.logger.Error("Failed to delete partnership", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// Contact notifies an offer's owner that the caller wants to talk.
func (h *PartnershipHandler) Contact(w http.ResponseWriter, req bunrouter.Request) error {
	partnershipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid partnership id")
	}

	current := session.FromContext(req.Context())

	partnership, err := h.db.Service().Partnership().RequestContact(req.Context(), current.UserID, partnershipID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrPartnershipNotFound):
			return writeError(w, http.StatusNotFound, "partnership not found")
		case errors.Is(err, service.ErrSelfContact):
			return writeError(w, http.StatusBadRequest, "cannot request contact on your own partnership")
		default:
			h.logger.Error("Failed to request partnership contact", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}

	return bunrouter.JSON(w, partnership)
}
