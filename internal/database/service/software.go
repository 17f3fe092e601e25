package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/belgahub/hub/internal/database/models"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotListingOwner is returned when a user tries to change a listing
// they do not own.
var ErrNotListingOwner = errors.New("listing belongs to another vendor")

// SoftwareDetail bundles everything a listing page needs.
type SoftwareDetail struct {
	Software      *types.Software   `json:"software"`
	Votes         *types.VoteCounts `json:"votes"`
	AverageRating float64           `json:"averageRating"`
	Reviews       []*types.Review   `json:"reviews"`
}

// SoftwareService handles listing reads, view tracking, and outbound clicks.
type SoftwareService struct {
	softwares *models.SoftwareModel
	votes     *models.VoteModel
	reviews   *models.ReviewModel
	clicks    *models.ClickModel
	notifier  Notifier
	logger    *zap.Logger
}

// NewSoftware creates a new software service.
func NewSoftware(
	softwares *models.SoftwareModel, votes *models.VoteModel,
	reviews *models.ReviewModel, clicks *models.ClickModel, logger *zap.Logger,
) *SoftwareService {
	return &SoftwareService{
		softwares: softwares,
		votes:     votes,
		reviews:   reviews,
		clicks:    clicks,
		notifier:  noopNotifier{},
		logger:    logger.Named("software_service"),
	}
}

// SetNotifier wires the notification queue once it exists.
func (s *SoftwareService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Create publishes a new listing for the vendor. The slug is derived
// from the name and the listing starts in pending status until
// approved.
func (s *SoftwareService) Create(
	ctx context.Context, vendorID uuid.UUID, software *types.Software, categoryIDs []int64,
) error {
	if err := prepareListing(software, vendorID); err != nil {
		return err
	}

	software.Status = enum.SoftwareStatusPending

	return s.softwares.CreateSoftware(ctx, software, categoryIDs)
}

// Update edits one of the vendor's listings.
// The slug follows the name; status is never editable by the vendor.
func (s *SoftwareService) Update(
	ctx context.Context, vendorID uuid.UUID, software *types.Software, categoryIDs []int64,
) error {
	existing, err := s.softwares.GetSoftware(ctx, software.ID)
	if err != nil {
		return err
	}

	if existing.VendorID != vendorID {
		return ErrNotListingOwner
	}

	if err := prepareListing(software, vendorID); err != nil {
		return err
	}

	return s.softwares.UpdateSoftware(ctx, software, categoryIDs)
}

// Delete removes one of the vendor's listings.
func (s *SoftwareService) Delete(ctx context.Context, vendorID uuid.UUID, id int64) error {
	existing, err := s.softwares.GetSoftware(ctx, id)
	if err != nil {
		return err
	}

	if existing.VendorID != vendorID {
		return ErrNotListingOwner
	}

	return s.softwares.DeleteSoftware(ctx, id)
}

// ListForVendor returns the vendor's own listings regardless of status.
func (s *SoftwareService) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]*types.Software, error) {
	return s.softwares.GetVendorSoftwares(ctx, vendorID)
}

// prepareListing fills the derived fields of a vendor-submitted
// listing: owner reference and name-derived slug.
func prepareListing(software *types.Software, vendorID uuid.UUID) error {
	if software.Name == "" {
		return errors.New("listing name is required")
	}

	software.VendorID = vendorID
	software.Slug = utils.Slugify(software.Name)

	return nil
}

// GetCatalog returns all approved listings for the catalog page.
func (s *SoftwareService) GetCatalog(ctx context.Context) ([]*types.Software, error) {
	return s.softwares.GetApprovedSoftwares(ctx)
}

// GetDetail loads a listing page by slug, counting the view and
// notifying the vendor when someone else viewed it.
func (s *SoftwareService) GetDetail(
	ctx context.Context, slug string, viewerID *uuid.UUID,
) (*SoftwareDetail, error) {
	software, err := s.softwares.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.recordView(ctx, software, viewerID)

	counts, err := s.votes.GetVoteCounts(ctx, software.ID)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviews.GetAverageRating(ctx, software.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.GetSoftwareReviews(ctx, software.ID)
	if err != nil {
		return nil, err
	}

	return &SoftwareDetail{
		Software:      software,
		Votes:         counts,
		AverageRating: rating,
		Reviews:       reviews,
	}, nil
}

// RecordOutboundClick stores a click on a listing's external link.
func (s *SoftwareService) RecordOutboundClick(
	ctx context.Context, softwareID int64, userID *uuid.UUID, target string,
) error {
	return s.clicks.RecordClick(ctx, &types.ExternalClick{
		SoftwareID: softwareID,
		UserID:     userID,
		Target:     target,
	})
}

// recordView bumps the view counter and queues a view notification.
// Both are best-effort: a page load never fails on tracking.
func (s *SoftwareService) recordView(ctx context.Context, software *types.Software, viewerID *uuid.UUID) {
	if err := s.softwares.IncrementViews(ctx, software.ID); err != nil {
		s.logger.Warn("Failed to increment views",
			zap.Int64("softwareID", software.ID),
			zap.Error(err))

		return
	}

	// Anonymous views and the vendor's own views generate no notification
	if viewerID == nil || *viewerID == software.VendorID {
		return
	}

	err := s.notifier.Enqueue(ctx, &types.Notification{
		UserID:  software.VendorID,
		Type:    enum.NotificationTypeView,
		Title:   "Seu software foi visualizado",
		Message: fmt.Sprintf("Alguém visualizou %s no catálogo.", software.Name),
		Metadata: map[string]any{
			"software_id": software.ID,
		},
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue view notification",
			zap.Int64("softwareID", software.ID),
			zap.Error(err))
	}
}
