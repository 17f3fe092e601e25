package handler

import (
	"errors"
	"net/http"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/postal"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ProfileHandler serves profile read and update endpoints.
type ProfileHandler struct {
	db     database.Client
	postal *postal.Client
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(db database.Client, postalClient *postal.Client, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		db:     db,
		postal: postalClient,
		logger: logger,
	}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	profile, err := h.db.Model().Profile().GetProfile(req.Context(), current.UserID)
	if err != nil {
		if errors.Is(err, types.ErrProfileNotFound) {
			return writeError(w, http.StatusNotFound, "profile not found")
		}

		h.logger.Error("Failed to load profile", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, profile)
}

// Update applies profile edits. A changed postal code is resolved to
// city and state when the lookup succeeds; otherwise the submitted
// values are kept as-is.
func (h *ProfileHandler) Update(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.UpdateProfileRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())

	profile, err := h.db.Model().Profile().GetProfile(req.Context(), current.UserID)
	if err != nil {
		if errors.Is(err, types.ErrProfileNotFound) {
			return writeError(w, http.StatusNotFound, "profile not found")
		}

		h.logger.Error("Failed to load profile", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	profile.Name = body.Name
	profile.Phone = body.Phone
	profile.Company = body.Company
	profile.City = body.City
	profile.State = body.State

	if body.PostalCode != profile.PostalCode {
		profile.PostalCode = body.PostalCode

		if address := h.postal.Lookup(req.Context(), body.PostalCode); address != nil {
			profile.City = address.City
			profile.State = address.State
		}
	}

	if err := h.db.Model().Profile().UpdateProfile(req.Context(), profile); err != nil {
		h.logger.Error("Failed to update profile", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, profile)
}

// LookupPostal resolves a postal code for address autofill.
func (h *ProfileHandler) LookupPostal(w http.ResponseWriter, req bunrouter.Request) error {
	address := h.postal.Lookup(req.Context(), req.Param("cep"))
	if address == nil {
		return writeError(w, http.StatusNotFound, "postal code not found")
	}

	return bunrouter.JSON(w, address)
}
