package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSelfContact is returned when a user requests contact on their own
// listing.
var ErrSelfContact = errors.New("cannot request contact on own partnership")

// partnershipStore is the persistence surface the service needs.
// *models.PartnershipModel implements it.
type partnershipStore interface {
	CreatePartnership(ctx context.Context, partnership *types.Partnership) error
	UpdatePartnership(ctx context.Context, partnership *types.Partnership) error
	DeletePartnership(ctx context.Context, id int64, ownerID uuid.UUID) error
	GetPartnership(ctx context.Context, id int64) (*types.Partnership, error)
	GetActivePartnerships(ctx context.Context) ([]*types.Partnership, error)
	GetOwnerPartnerships(ctx context.Context, ownerID uuid.UUID) ([]*types.Partnership, error)
}

// profileStore resolves display names for the contact fan-out.
// *models.ProfileModel implements it.
type profileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
}

// PartnershipService handles partnership listing CRUD and the
// contact-request fan-out.
type PartnershipService struct {
	partnerships partnershipStore
	profiles     profileStore
	notifier     Notifier
	logger       *zap.Logger
}

// NewPartnership creates a new partnership service.
func NewPartnership(
	partnerships partnershipStore, profiles profileStore, logger *zap.Logger,
) *PartnershipService {
	return &PartnershipService{
		partnerships: partnerships,
		profiles:     profiles,
		notifier:     noopNotifier{},
		logger:       logger.Named("partnership_service"),
	}
}

// SetNotifier wires the notification queue once it exists.
func (s *PartnershipService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Create publishes a new listing owned by ownerID.
func (s *PartnershipService) Create(
	ctx context.Context, ownerID uuid.UUID, partnership *types.Partnership,
) error {
	if !partnership.Type.Valid() {
		return types.ErrInvalidPartnershipType
	}

	partnership.OwnerID = ownerID

	return s.partnerships.CreatePartnership(ctx, partnership)
}

// Update edits an existing listing. Only the owner's listings match.
func (s *PartnershipService) Update(
	ctx context.Context, ownerID uuid.UUID, partnership *types.Partnership,
) error {
	if !partnership.Type.Valid() {
		return types.ErrInvalidPartnershipType
	}

	partnership.OwnerID = ownerID

	return s.partnerships.UpdatePartnership(ctx, partnership)
}

// Delete removes one of the owner's listings.
func (s *PartnershipService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return s.partnerships.DeletePartnership(ctx, id, ownerID)
}

// ListActive returns every active listing for the partnerships page,
// featured first then newest.
func (s *PartnershipService) ListActive(ctx context.Context) ([]*types.Partnership, error) {
	return s.partnerships.GetActivePartnerships(ctx)
}

// ListForOwner returns the user's own listings.
func (s *PartnershipService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Partnership, error) {
	return s.partnerships.GetOwnerPartnerships(ctx, ownerID)
}

// RequestContact notifies a listing's owner that someone wants to talk.
// The notification is a fan-out side effect, queued rather than written
// inline, so the caller's action never fails on it.
func (s *PartnershipService) RequestContact(
	ctx context.Context, requesterID uuid.UUID, partnershipID int64,
) (*types.Partnership, error) {
	partnership, err := s.partnerships.GetPartnership(ctx, partnershipID)
	if err != nil {
		return nil, err
	}

	if partnership.OwnerID == requesterID {
		return nil, ErrSelfContact
	}

	requesterName := "Um usuário"
	if profile, err := s.profiles.GetProfile(ctx, requesterID); err == nil {
		requesterName = profile.Name
	}

	err = s.notifier.Enqueue(ctx, &types.Notification{
		UserID:  partnership.OwnerID,
		Type:    enum.NotificationTypePartnership,
		Title:   "Novo interesse em parceria",
		Message: fmt.Sprintf("%s tem interesse na parceria %s.", requesterName, partnership.Name),
		Metadata: map[string]any{
			"partnership_id": partnership.ID,
			"profile_id":     requesterID.String(),
		},
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue contact notification",
			zap.Int64("partnershipID", partnership.ID),
			zap.Error(err))
	}

	return partnership, nil
}
