package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PartnershipModel handles database operations for partnership listings.
type PartnershipModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPartnership creates a new partnership model.
func NewPartnership(db *bun.DB, logger *zap.Logger) *PartnershipModel {
	return &PartnershipModel{
		db:     db,
		logger: logger.Named("db_partnership"),
	}
}

// CreatePartnership inserts a new listing.
func (r *PartnershipModel) CreatePartnership(ctx context.Context, partnership *types.Partnership) error {
	now := time.Now()
	partnership.Active = true
	partnership.CreatedAt = now
	partnership.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(partnership).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create partnership: %w", err)
	}

	return nil
}

// GetPartnership retrieves a listing by ID.
func (r *PartnershipModel) GetPartnership(ctx context.Context, id int64) (*types.Partnership, error) {
	var partnership types.Partnership

	err := r.db.NewSelect().
		Model(&partnership).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrPartnershipNotFound
		}

		return nil, fmt.Errorf("failed to get partnership: %w", err)
	}

	return &partnership, nil
}

// GetActivePartnerships retrieves every active listing for the
// partnerships page, featured first then newest.
func (r *PartnershipModel) GetActivePartnerships(ctx context.Context) ([]*types.Partnership, error) {
	var partnerships []*types.Partnership

	err := r.db.NewSelect().
		Model(&partnerships).
		Where("active = true").
		OrderExpr("featured DESC, created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active partnerships: %w", err)
	}

	return partnerships, nil
}

// GetOwnerPartnerships retrieves a user's own listings, newest first.
func (r *PartnershipModel) GetOwnerPartnerships(ctx context.Context, ownerID uuid.UUID) ([]*types.Partnership, error) {
	var partnerships []*types.Partnership

	err := r.db.NewSelect().
		Model(&partnerships).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner partnerships: %w", err)
	}

	return partnerships, nil
}

// UpdatePartnership updates a listing's editable fields.
// The owner guard keeps users from editing listings they don't own.
func (r *PartnershipModel) UpdatePartnership(ctx context.Context, partnership *types.Partnership) error {
	partnership.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(partnership).
		Column(
			"type", "name", "description", "whatsapp", "location",
			"commission_rate", "training_provided", "support_provided",
			"active", "updated_at",
		).
		WherePK().
		Where("owner_id = ?", partnership.OwnerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update partnership: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrPartnershipNotFound
	}

	return nil
}

// DeletePartnership removes a listing. Only the owner's rows match.
func (r *PartnershipModel) DeletePartnership(ctx context.Context, id int64, ownerID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*types.Partnership)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete partnership: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrPartnershipNotFound
	}

	return nil
}
