package handler

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/belgahub/hub/internal/catalog"
	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/service"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// catalogRefreshInterval bounds how long the in-memory catalog is
// served before the next request reloads it from the database.
const catalogRefreshInterval = time.Minute

// CatalogHandler serves the marketplace listing endpoints. The full
// approved catalog is cached in a filter engine and refreshed lazily;
// filtering happens in memory per request.
type CatalogHandler struct {
	db       database.Client
	engine   *catalog.Engine
	lastLoad atomic.Int64
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(db database.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		db:     db,
		engine: catalog.NewEngine(),
		logger: logger,
	}
}

// List returns approved softwares filtered by the query parameters.
func (h *CatalogHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	query := req.URL.Query()
	criteria := catalog.Criteria{
		Category:     query.Get("category"),
		CompanySize:  query.Get("companySize"),
		Problem:      query.Get("problem"),
		Price:        enum.PriceBracket(query.Get("price")),
		Availability: catalog.AvailabilityMode(query.Get("availability")),
		Query:        query.Get("q"),
	}

	snap, err := h.snapshot(req, criteria)
	if err != nil {
		h.logger.Error("Failed to load catalog", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, restTypes.CatalogResponse{
		Softwares: snap.Items,
		Total:     len(snap.Items),
		NoResults: snap.NoResults,
	})
}

// snapshot filters the cached catalog, reloading it first when it has
// never been loaded or has gone stale. A reload that loses the race
// against a newer one is discarded by the engine's generation check.
func (h *CatalogHandler) snapshot(req bunrouter.Request, criteria catalog.Criteria) (catalog.Snapshot, error) {
	snap := h.engine.ApplyFilters(criteria)
	if snap.Loaded && !h.stale() {
		return snap, nil
	}

	softwares, err := h.db.Service().Software().GetCatalog(req.Context())
	if err != nil {
		if snap.Loaded {
			// Serve the cached list rather than failing the page
			h.logger.Warn("Catalog refresh failed, serving cached data", zap.Error(err))

			return snap, nil
		}

		return snap, err
	}

	if h.engine.SetAllFrom(snap.Generation, softwares) {
		h.lastLoad.Store(time.Now().UnixNano())
	}

	return h.engine.ApplyFilters(criteria), nil
}

func (h *CatalogHandler) stale() bool {
	return time.Since(time.Unix(0, h.lastLoad.Load())) > catalogRefreshInterval
}

// invalidate forces the next request to reload the catalog.
func (h *CatalogHandler) invalidate() {
	h.lastLoad.Store(0)
}

// Detail returns one listing by slug, counting the view.
func (h *CatalogHandler) Detail(w http.ResponseWriter, req bunrouter.Request) error {
	detail, err := h.db.Service().Software().GetDetail(req.Context(), req.Param("slug"), viewerID(req))
	if err != nil {
		if errors.Is(err, types.ErrSoftwareNotFound) {
			return writeError(w, http.StatusNotFound, "software not found")
		}

		h.logger.Error("Failed to load software detail", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, detail)
}

// Create publishes a new listing owned by the caller.
func (h *CatalogHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.SoftwareDraft
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())
	software := body.Software()

	err := h.db.Service().Software().Create(req.Context(), current.UserID, software, body.CategoryIDs)
	if err != nil {
		if errors.Is(err, types.ErrSlugTaken) {
			return writeError(w, http.StatusConflict, "a listing with this name already exists")
		}

		h.logger.Error("Failed to create software", zap.Error(err))

		return writeError(w, http.StatusBadRequest, err.Error())
	}

	return bunrouter.JSON(w, software)
}

// Update edits one of the caller's listings.
func (h *CatalogHandler) Update(w http.ResponseWriter, req bunrouter.Request) error {
	softwareID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid software id")
	}

	var body restTypes.SoftwareDraft
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())
	software := body.Software()
	software.ID = softwareID

	err = h.db.Service().Software().Update(req.Context(), current.UserID, software, body.CategoryIDs)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrSoftwareNotFound):
			return writeError(w, http.StatusNotFound, "software not found")
		case errors.Is(err, service.ErrNotListingOwner):
			return writeError(w, http.StatusForbidden, "you do not own this listing")
		case errors.Is(err, types.ErrSlugTaken):
			return writeError(w, http.StatusConflict, "a listing with this name already exists")
		default:
			h.logger.Error("Failed to update software", zap.Error(err))

			return writeError(w, http.StatusBadRequest, err.Error())
		}
	}

	h.invalidate()

	return bunrouter.JSON(w, software)
}

// Delete removes one of the caller's listings.
func (h *CatalogHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	softwareID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "invalid software id")
	}

	current := session.FromContext(req.Context())

	err = h.db.Service().Software().Delete(req.Context(), current.UserID, softwareID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrSoftwareNotFound):
			return writeError(w, http.StatusNotFound, "software not found")
		case errors.Is(err, service.ErrNotListingOwner):
			return writeError(w, http.StatusForbidden, "you do not own this listing")
		default:
			h.logger.Error("Failed to delete software", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}

	h.invalidate()
	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ListMine returns the caller's own listings regardless of status.
func (h *CatalogHandler) ListMine(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	softwares, err := h.db.Service().Software().ListForVendor(req.Context(), current.UserID)
	if err != nil {
		h.logger.Error("Failed to list vendor softwares", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, softwares)
}

// ListMyVotes returns the caller's votes keyed by software ID.
func (h *CatalogHandler) ListMyVotes(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	votes, err := h.db.Service().Vote().ListForUser(req.Context(), current.UserID)
	if err != nil {
		h.logger.Error("Failed to list user votes", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, votes)
}

// Vote casts, switches, or withdraws the caller's vote on a listing.
func (h *CatalogHandler) Vote(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.VoteRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())

	counts, err := h.db.Service().Vote().CastVote(req.Context(), current.UserID, body.SoftwareID, body.Type)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidVoteType):
			return writeError(w, http.StatusBadRequest, "invalid vote type")
		case errors.Is(err, types.ErrSoftwareNotFound):
			return writeError(w, http.StatusNotFound, "software not found")
		default:
			h.logger.Error("Failed to cast vote", zap.Error(err))

			return writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}

	return bunrouter.JSON(w, counts)
}

// Click records an outbound link click on a listing.
func (h *CatalogHandler) Click(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ClickRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	err := h.db.Service().Software().RecordOutboundClick(req.Context(), body.SoftwareID, viewerID(req), body.Target)
	if err != nil {
		h.logger.Error("Failed to record click", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// viewerID extracts the optional authenticated user ID.
func viewerID(req bunrouter.Request) *uuid.UUID {
	if current := session.FromContext(req.Context()); current != nil {
		return &current.UserID
	}

	return nil
}
