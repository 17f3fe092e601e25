package service

import (
	"context"
	"fmt"

	"github.com/belgahub/hub/internal/database/models"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// voteAction describes how a cast vote changes the stored state.
type voteAction int

const (
	// voteActionInsert records a first vote.
	voteActionInsert voteAction = iota
	// voteActionUpdate flips an existing vote to the other direction.
	voteActionUpdate
	// voteActionRemove withdraws an existing vote of the same direction.
	voteActionRemove
)

// VoteService handles vote casting and its notification side effects.
type VoteService struct {
	votes     *models.VoteModel
	softwares *models.SoftwareModel
	notifier  Notifier
	logger    *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(votes *models.VoteModel, softwares *models.SoftwareModel, logger *zap.Logger) *VoteService {
	return &VoteService{
		votes:     votes,
		softwares: softwares,
		notifier:  noopNotifier{},
		logger:    logger.Named("vote_service"),
	}
}

// SetNotifier wires the notification queue once it exists.
func (s *VoteService) SetNotifier(n Notifier) {
	s.notifier = n
}

// ListForUser returns the user's votes keyed by software ID, used to
// highlight the buttons the user already clicked.
func (s *VoteService) ListForUser(ctx context.Context, userID uuid.UUID) (map[int64]enum.VoteType, error) {
	return s.votes.GetUserVotes(ctx, userID)
}

// nextVoteAction decides what a requested vote does given the current one.
// Voting the same direction twice withdraws the vote; voting the other
// direction flips it.
func nextVoteAction(current *types.Vote, requested enum.VoteType) voteAction {
	switch {
	case current == nil:
		return voteActionInsert
	case current.Type == requested:
		return voteActionRemove
	default:
		return voteActionUpdate
	}
}

// CastVote applies a user's vote on a software and returns the new totals.
// The software's vendor is notified unless they voted on their own listing
// or the vote was withdrawn.
func (s *VoteService) CastVote(
	ctx context.Context, userID uuid.UUID, softwareID int64, voteType enum.VoteType,
) (*types.VoteCounts, error) {
	if !voteType.Valid() {
		return nil, types.ErrInvalidVoteType
	}

	software, err := s.softwares.GetSoftware(ctx, softwareID)
	if err != nil {
		return nil, err
	}

	current, err := s.votes.GetVote(ctx, userID, softwareID)
	if err != nil {
		return nil, err
	}

	action := nextVoteAction(current, voteType)

	switch action {
	case voteActionInsert:
		err = s.votes.InsertVote(ctx, &types.Vote{
			UserID:     userID,
			SoftwareID: softwareID,
			Type:       voteType,
		})
	case voteActionUpdate:
		err = s.votes.UpdateVote(ctx, userID, softwareID, voteType)
	case voteActionRemove:
		err = s.votes.DeleteVote(ctx, userID, softwareID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	counts, err := s.votes.GetVoteCounts(ctx, softwareID)
	if err != nil {
		return nil, err
	}

	// Withdrawn votes and self-votes generate no notification
	if action != voteActionRemove && software.VendorID != userID {
		s.notifyVendor(ctx, software, voteType)
	}

	return counts, nil
}

// notifyVendor queues a vote notification for the listing's vendor.
// Failures are logged and swallowed so voting never breaks on delivery.
func (s *VoteService) notifyVendor(ctx context.Context, software *types.Software, voteType enum.VoteType) {
	title := "Novo voto positivo!"
	message := fmt.Sprintf("Seu software %s recebeu um voto positivo.", software.Name)

	if voteType == enum.VoteTypeDown {
		title = "Novo voto negativo"
		message = fmt.Sprintf("Seu software %s recebeu um voto negativo.", software.Name)
	}

	err := s.notifier.Enqueue(ctx, &types.Notification{
		UserID:  software.VendorID,
		Type:    enum.NotificationTypeSoftware,
		Title:   title,
		Message: message,
		Metadata: map[string]any{
			"software_id": software.ID,
			"vote_type":   string(voteType),
		},
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue vote notification",
			zap.Int64("softwareID", software.ID),
			zap.Error(err))
	}
}
