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

// ProfileModel handles database operations for user profiles.
type ProfileModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewProfile creates a new profile model.
func NewProfile(db *bun.DB, logger *zap.Logger) *ProfileModel {
	return &ProfileModel{
		db:     db,
		logger: logger.Named("db_profile"),
	}
}

// GetProfile retrieves a profile by ID.
func (r *ProfileModel) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	var profile types.Profile

	err := r.db.NewSelect().
		Model(&profile).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetProfileByEmail retrieves a profile by email address.
func (r *ProfileModel) GetProfileByEmail(ctx context.Context, email string) (*types.Profile, error) {
	var profile types.Profile

	err := r.db.NewSelect().
		Model(&profile).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// CreateProfile inserts a new profile.
func (r *ProfileModel) CreateProfile(ctx context.Context, profile *types.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(profile).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// UpdateProfile updates the mutable fields of a profile.
func (r *ProfileModel) UpdateProfile(ctx context.Context, profile *types.Profile) error {
	profile.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(profile).
		Column("name", "phone", "company", "city", "state", "postal_code", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrProfileNotFound
	}

	return nil
}

// DeleteProfile removes a profile.
func (r *ProfileModel) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*types.Profile)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
