package service

import (
	"testing"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func TestNextVoteAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		current   *types.Vote
		requested enum.VoteType
		expected  voteAction
	}{
		{
			name:      "no existing vote inserts",
			current:   nil,
			requested: enum.VoteTypeUp,
			expected:  voteActionInsert,
		},
		{
			name:      "same direction withdraws",
			current:   &types.Vote{Type: enum.VoteTypeUp},
			requested: enum.VoteTypeUp,
			expected:  voteActionRemove,
		},
		{
			name:      "same direction down withdraws",
			current:   &types.Vote{Type: enum.VoteTypeDown},
			requested: enum.VoteTypeDown,
			expected:  voteActionRemove,
		},
		{
			name:      "opposite direction flips",
			current:   &types.Vote{Type: enum.VoteTypeDown},
			requested: enum.VoteTypeUp,
			expected:  voteActionUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, nextVoteAction(tt.current, tt.requested))
		})
	}
}
