package types

import (
	"errors"
	"time"

	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
)

var (
	ErrPartnershipNotFound    = errors.New("partnership not found")
	ErrInvalidPartnershipType = errors.New("invalid partnership type")
)

// Partnership is an offer published by its owner on the partnerships
// page: a company looking for resellers, implementers, or lead
// generators. Owners create, edit, and delete their own listings.
type Partnership struct {
	ID               int64                `bun:",pk,autoincrement"      json:"id"`
	OwnerID          uuid.UUID            `bun:",notnull"               json:"ownerId"`
	Type             enum.PartnershipType `bun:",notnull"               json:"type"`
	Name             string               `bun:",notnull"               json:"name"`
	Description      string               `bun:",notnull"               json:"description"`
	Whatsapp         string               `bun:",notnull"               json:"whatsapp"`
	Location         string               `bun:","                      json:"location"`
	CommissionRate   *float64             `bun:","                      json:"commissionRate"`
	TrainingProvided bool                 `bun:",notnull,default:false" json:"trainingProvided"`
	SupportProvided  bool                 `bun:",notnull,default:false" json:"supportProvided"`
	Active           bool                 `bun:",notnull,default:true"  json:"active"`
	Featured         bool                 `bun:",notnull,default:false" json:"featured"`
	CreatedAt        time.Time            `bun:",notnull"               json:"createdAt"`
	UpdatedAt        time.Time            `bun:",notnull"               json:"updatedAt"`
}
