package types

import (
	"errors"
	"time"

	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
)

var ErrInvalidVoteType = errors.New("invalid vote type")

// Vote records a user's up or down vote on a software.
// A user holds at most one vote per software.
type Vote struct {
	UserID     uuid.UUID     `bun:",pk,notnull" json:"userId"`
	SoftwareID int64         `bun:",pk,notnull" json:"softwareId"`
	Type       enum.VoteType `bun:",notnull"    json:"type"`
	CreatedAt  time.Time     `bun:",notnull"    json:"createdAt"`
	UpdatedAt  time.Time     `bun:",notnull"    json:"updatedAt"`
}

// VoteCounts aggregates the vote totals for a software.
type VoteCounts struct {
	SoftwareID int64 `json:"softwareId"`
	Up         int   `json:"up"`
	Down       int   `json:"down"`
}
