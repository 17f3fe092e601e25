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
	"go.uber.org/zap"
)

// VoteModel handles database operations for software votes.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger.Named("db_vote"),
	}
}

// GetVote retrieves a user's vote on a software.
// Returns nil without error when the user has not voted.
func (r *VoteModel) GetVote(ctx context.Context, userID uuid.UUID, softwareID int64) (*types.Vote, error) {
	var vote types.Vote

	err := r.db.NewSelect().
		Model(&vote).
		Where("user_id = ?", userID).
		Where("software_id = ?", softwareID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// GetUserVotes retrieves all of a user's votes keyed by software ID.
func (r *VoteModel) GetUserVotes(ctx context.Context, userID uuid.UUID) (map[int64]enum.VoteType, error) {
	var votes []*types.Vote

	err := r.db.NewSelect().
		Model(&votes).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user votes: %w", err)
	}

	result := make(map[int64]enum.VoteType, len(votes))
	for _, vote := range votes {
		result[vote.SoftwareID] = vote.Type
	}

	return result, nil
}

// GetVoteCounts aggregates up and down totals for a software.
func (r *VoteModel) GetVoteCounts(ctx context.Context, softwareID int64) (*types.VoteCounts, error) {
	counts := &types.VoteCounts{SoftwareID: softwareID}

	err := r.db.NewSelect().
		Model((*types.Vote)(nil)).
		ColumnExpr("count(*) FILTER (WHERE type = ?) AS up", enum.VoteTypeUp).
		ColumnExpr("count(*) FILTER (WHERE type = ?) AS down", enum.VoteTypeDown).
		Where("software_id = ?", softwareID).
		Scan(ctx, &counts.Up, &counts.Down)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote counts: %w", err)
	}

	return counts, nil
}

// InsertVote records a new vote.
func (r *VoteModel) InsertVote(ctx context.Context, vote *types.Vote) error {
	now := time.Now()
	vote.CreatedAt = now
	vote.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(vote).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

// UpdateVote flips an existing vote to the given type.
func (r *VoteModel) UpdateVote(ctx context.Context, userID uuid.UUID, softwareID int64, voteType enum.VoteType) error {
	_, err := r.db.NewUpdate().
		Model((*types.Vote)(nil)).
		Set("type = ?", voteType).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("software_id = ?", softwareID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	return nil
}

// DeleteVote removes a user's vote on a software.
func (r *VoteModel) DeleteVote(ctx context.Context, userID uuid.UUID, softwareID int64) error {
	_, err := r.db.NewDelete().
		Model((*types.Vote)(nil)).
		Where("user_id = ?", userID).
		Where("software_id = ?", softwareID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	return nil
}
