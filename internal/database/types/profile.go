package types

import (
	"errors"
	"time"

	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile represents a user's public account data.
// The ID matches the owning identity's ID.
type Profile struct {
	ID         uuid.UUID        `bun:",pk,notnull"     json:"id"`
	Name       string           `bun:",notnull"        json:"name"`
	Email      string           `bun:",notnull,unique" json:"email"`
	Phone      string           `bun:",notnull"        json:"phone"`
	Company    string           `bun:",notnull"        json:"company"`
	Role       enum.ProfileRole `bun:",notnull"        json:"role"`
	City       string           `bun:",notnull"        json:"city"`
	State      string           `bun:",notnull"        json:"state"`
	PostalCode string           `bun:",notnull"        json:"postalCode"`
	CreatedAt  time.Time        `bun:",notnull"        json:"createdAt"`
	UpdatedAt  time.Time        `bun:",notnull"        json:"updatedAt"`
}
