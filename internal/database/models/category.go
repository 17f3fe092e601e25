package models

import (
	"context"
	"fmt"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CategoryModel handles database operations for catalog categories.
type CategoryModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCategory creates a new category model.
func NewCategory(db *bun.DB, logger *zap.Logger) *CategoryModel {
	return &CategoryModel{
		db:     db,
		logger: logger.Named("db_category"),
	}
}

// GetCategories retrieves all categories ordered by name.
func (r *CategoryModel) GetCategories(ctx context.Context) ([]*types.Category, error) {
	var categories []*types.Category

	err := r.db.NewSelect().
		Model(&categories).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// GetCategoriesBySlugs retrieves categories matching the given slugs.
func (r *CategoryModel) GetCategoriesBySlugs(ctx context.Context, slugs []string) ([]*types.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	var categories []*types.Category

	err := r.db.NewSelect().
		Model(&categories).
		Where("slug IN (?)", bun.In(slugs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories by slugs: %w", err)
	}

	return categories, nil
}
