package models

import (
	"context"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReviewModel handles database operations for software reviews.
type ReviewModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReview creates a new review model.
func NewReview(db *bun.DB, logger *zap.Logger) *ReviewModel {
	return &ReviewModel{
		db:     db,
		logger: logger.Named("db_review"),
	}
}

// GetSoftwareReviews retrieves reviews for a software, newest first.
func (r *ReviewModel) GetSoftwareReviews(ctx context.Context, softwareID int64) ([]*types.Review, error) {
	var reviews []*types.Review

	err := r.db.NewSelect().
		Model(&reviews).
		Where("software_id = ?", softwareID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// CreateReview inserts a new review.
func (r *ReviewModel) CreateReview(ctx context.Context, review *types.Review) error {
	review.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(review).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetAverageRating computes the mean rating for a software.
// Returns 0 when the software has no reviews.
func (r *ReviewModel) GetAverageRating(ctx context.Context, softwareID int64) (float64, error) {
	var avg float64

	err := r.db.NewSelect().
		Model((*types.Review)(nil)).
		ColumnExpr("COALESCE(avg(rating), 0)").
		Where("software_id = ?", softwareID).
		Scan(ctx, &avg)
	if err != nil {
		return 0, fmt.Errorf("failed to get average rating: %w", err)
	}

	return avg, nil
}
