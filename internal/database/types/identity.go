package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity holds the authentication credentials for an account.
// Profile data lives separately so an identity can exist briefly
// without a profile during signup.
type Identity struct {
	ID           uuid.UUID `bun:",pk,notnull"            json:"id"`
	Email        string    `bun:",notnull,unique"        json:"email"`
	PasswordHash string    `bun:",notnull"               json:"-"`
	Confirmed    bool      `bun:",notnull,default:false" json:"confirmed"`
	CreatedAt    time.Time `bun:",notnull"               json:"createdAt"`
	UpdatedAt    time.Time `bun:",notnull"               json:"updatedAt"`
}
