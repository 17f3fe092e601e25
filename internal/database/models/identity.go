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
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

// IdentityModel handles database operations for authentication identities.
type IdentityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewIdentity creates a new identity model.
func NewIdentity(db *bun.DB, logger *zap.Logger) *IdentityModel {
	return &IdentityModel{
		db:     db,
		logger: logger.Named("db_identity"),
	}
}

// CreateIdentity inserts a new identity.
// Returns ErrEmailTaken when the email is already registered.
func (r *IdentityModel) CreateIdentity(ctx context.Context, identity *types.Identity) error {
	now := time.Now()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(identity).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return types.ErrEmailTaken
		}

		return fmt.Errorf("failed to create identity: %w", err)
	}

	return nil
}

// GetIdentityByEmail retrieves an identity by its email address.
func (r *IdentityModel) GetIdentityByEmail(ctx context.Context, email string) (*types.Identity, error) {
	var identity types.Identity

	err := r.db.NewSelect().
		Model(&identity).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrIdentityNotFound
		}

		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return &identity, nil
}

// GetIdentity retrieves an identity by ID.
func (r *IdentityModel) GetIdentity(ctx context.Context, id uuid.UUID) (*types.Identity, error) {
	var identity types.Identity

	err := r.db.NewSelect().
		Model(&identity).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrIdentityNotFound
		}

		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return &identity, nil
}

// UpdatePassword replaces the stored password hash for an identity.
func (r *IdentityModel) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.NewUpdate().
		Model((*types.Identity)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return types.ErrIdentityNotFound
	}

	return nil
}

// DeleteIdentity removes an identity.
// Used to roll back signup when profile creation fails.
func (r *IdentityModel) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*types.Identity)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	return nil
}
