package models

import (
	"context"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ClickModel handles database operations for outbound link clicks.
type ClickModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewClick creates a new click model.
func NewClick(db *bun.DB, logger *zap.Logger) *ClickModel {
	return &ClickModel{
		db:     db,
		logger: logger.Named("db_click"),
	}
}

// RecordClick stores an outbound click event.
func (r *ClickModel) RecordClick(ctx context.Context, click *types.ExternalClick) error {
	click.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(click).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

// CountSoftwareClicks returns the number of outbound clicks for a listing.
func (r *ClickModel) CountSoftwareClicks(ctx context.Context, softwareID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.ExternalClick)(nil)).
		Where("software_id = ?", softwareID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	return count, nil
}
