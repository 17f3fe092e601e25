package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

// SoftwareModel handles database operations for software listings.
type SoftwareModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSoftware creates a new software model.
func NewSoftware(db *bun.DB, logger *zap.Logger) *SoftwareModel {
	return &SoftwareModel{
		db:     db,
		logger: logger.Named("db_software"),
	}
}

// GetApprovedSoftwares retrieves all approved listings with their categories,
// ordered featured-first then newest.
func (r *SoftwareModel) GetApprovedSoftwares(ctx context.Context) ([]*types.Software, error) {
	var softwares []*types.Software

	err := r.db.NewSelect().
		Model(&softwares).
		Relation("Categories").
		Where("status = ?", enum.SoftwareStatusApproved).
		OrderExpr("featured DESC, created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get softwares: %w", err)
	}

	return softwares, nil
}

// GetSoftware retrieves a single listing by ID with its categories.
func (r *SoftwareModel) GetSoftware(ctx context.Context, id int64) (*types.Software, error) {
	var software types.Software

	err := r.db.NewSelect().
		Model(&software).
		Relation("Categories").
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrSoftwareNotFound
		}

		return nil, fmt.Errorf("failed to get software: %w", err)
	}

	return &software, nil
}

// GetSoftwareBySlug retrieves a single listing by slug with its categories.
func (r *SoftwareModel) GetSoftwareBySlug(ctx context.Context, slug string) (*types.Software, error) {
	var software types.Software

	err := r.db.NewSelect().
		Model(&software).
		Relation("Categories").
		Where("s.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrSoftwareNotFound
		}

		return nil, fmt.Errorf("failed to get software: %w", err)
	}

	return &software, nil
}

// GetVendorSoftwares retrieves every listing owned by a vendor regardless of status.
func (r *SoftwareModel) GetVendorSoftwares(ctx context.Context, vendorID uuid.UUID) ([]*types.Software, error) {
	var softwares []*types.Software

	err := r.db.NewSelect().
		Model(&softwares).
		Relation("Categories").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor softwares: %w", err)
	}

	return softwares, nil
}

// CreateSoftware inserts a new listing along with its category links.
// Returns ErrSlugTaken when the slug collides with an existing listing.
func (r *SoftwareModel) CreateSoftware(ctx context.Context, software *types.Software, categoryIDs []int64) error {
	now := time.Now()
	software.CreatedAt = now
	software.UpdatedAt = now

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(software).Exec(ctx); err != nil {
			return err
		}

		return insertCategoryLinks(ctx, tx, software.ID, categoryIDs)
	})
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return types.ErrSlugTaken
		}

		return fmt.Errorf("failed to create software: %w", err)
	}

	return nil
}

// UpdateSoftware updates a listing's editable fields and replaces its category links.
func (r *SoftwareModel) UpdateSoftware(ctx context.Context, software *types.Software, categoryIDs []int64) error {
	software.UpdatedAt = time.Now()

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model(software).
			Column(
				"name", "slug", "company", "description", "website", "demo_url",
				"pricing", "price_monthly", "company_sizes", "problems",
				"partnership_available", "purchase_available", "subscription_available",
				"updated_at",
			).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			return types.ErrSoftwareNotFound
		}

		_, err = tx.NewDelete().
			Model((*types.SoftwareCategory)(nil)).
			Where("software_id = ?", software.ID).
			Exec(ctx)
		if err != nil {
			return err
		}

		return insertCategoryLinks(ctx, tx, software.ID, categoryIDs)
	})
	if err != nil {
		if errors.Is(err, types.ErrSoftwareNotFound) {
			return err
		}

		return fmt.Errorf("failed to update software: %w", err)
	}

	return nil
}

// DeleteSoftware removes a listing and its category links.
func (r *SoftwareModel) DeleteSoftware(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*types.SoftwareCategory)(nil)).
			Where("software_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*types.Software)(nil)).
			Where("id = ?", id).
			Exec(ctx)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete software: %w", err)
	}

	return nil
}

// IncrementViews bumps the view counter for a listing.
func (r *SoftwareModel) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.NewUpdate().
		Model((*types.Software)(nil)).
		Set("views = views + 1").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

// SetStatus moves a listing through the moderation lifecycle.
func (r *SoftwareModel) SetStatus(ctx context.Context, id int64, status enum.SoftwareStatus) error {
	result, err := r.db.NewUpdate().
		Model((*types.Software)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set software status: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrSoftwareNotFound
	}

	return nil
}

// insertCategoryLinks inserts join rows for the given category IDs.
func insertCategoryLinks(ctx context.Context, tx bun.Tx, softwareID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]*types.SoftwareCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, &types.SoftwareCategory{
			SoftwareID: softwareID,
			CategoryID: categoryID,
		})
	}

	_, err := tx.NewInsert().
		Model(&links).
		On("CONFLICT DO NOTHING").
		Exec(ctx)

	return err
}
