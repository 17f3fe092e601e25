package types

import (
	"errors"
	"time"

	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
)

var (
	ErrSoftwareNotFound = errors.New("software not found")
	ErrSlugTaken        = errors.New("software slug already in use")
)

// Software represents a product listing in the catalog.
type Software struct {
	ID          int64     `bun:",pk,autoincrement"      json:"id"`
	VendorID    uuid.UUID `bun:",notnull"               json:"vendorId"`
	Name        string    `bun:",notnull"               json:"name"`
	Slug        string    `bun:",notnull,unique"        json:"slug"`
	Company     string    `bun:",notnull"               json:"company"`
	Description string    `bun:",notnull"               json:"description"`
	Website     string    `bun:",notnull"               json:"website"`
	DemoURL     string    `bun:",notnull"               json:"demoUrl"`

	// Pricing holds the vendor's free-form pricing text (e.g. "R$ 99/mês").
	// PriceMonthly is the structured value when the vendor provided one;
	// nil means only the text is available and classification falls back
	// to parsing Pricing.
	Pricing      string   `bun:",notnull" json:"pricing"`
	PriceMonthly *float64 `bun:","        json:"priceMonthly"`

	Status                enum.SoftwareStatus `bun:",notnull"               json:"status"`
	Featured              bool                `bun:",notnull,default:false" json:"featured"`
	Views                 int64               `bun:",notnull,default:0"     json:"views"`
	CompanySizes          []string            `bun:",array"                 json:"companySizes"`
	Problems              []string            `bun:",array"                 json:"problems"`
	PartnershipAvailable  bool                `bun:",notnull,default:false" json:"partnershipAvailable"`
	PurchaseAvailable     bool                `bun:",notnull,default:false" json:"purchaseAvailable"`
	SubscriptionAvailable bool                `bun:",notnull,default:false" json:"subscriptionAvailable"`
	CreatedAt             time.Time           `bun:",notnull"               json:"createdAt"`
	UpdatedAt             time.Time           `bun:",notnull"               json:"updatedAt"`

	Categories []*Category `bun:"m2m:software_categories,join:Software=Category" json:"categories"`
}

// Category groups softwares by business problem area.
type Category struct {
	ID   int64  `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",notnull"          json:"name"`
	Slug string `bun:",notnull,unique"   json:"slug"`
}

// SoftwareCategory is the join table linking softwares to categories.
type SoftwareCategory struct {
	SoftwareID int64     `bun:",pk" json:"softwareId"`
	CategoryID int64     `bun:",pk" json:"categoryId"`
	Software   *Software `bun:"rel:belongs-to,join:software_id=id" json:"-"`
	Category   *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`
}

// Review is a rating with optional comment left by a user on a software.
type Review struct {
	ID         int64     `bun:",pk,autoincrement" json:"id"`
	SoftwareID int64     `bun:",notnull"          json:"softwareId"`
	UserID     uuid.UUID `bun:",notnull"          json:"userId"`
	Rating     int       `bun:",notnull"          json:"rating"`
	Comment    string    `bun:",notnull"          json:"comment"`
	CreatedAt  time.Time `bun:",notnull"          json:"createdAt"`
}

// ExternalClick records a user following an outbound link from a listing.
type ExternalClick struct {
	ID         int64      `bun:",pk,autoincrement" json:"id"`
	SoftwareID int64      `bun:",notnull"          json:"softwareId"`
	UserID     *uuid.UUID `bun:","                 json:"userId"`
	Target     string     `bun:",notnull"          json:"target"`
	CreatedAt  time.Time  `bun:",notnull"          json:"createdAt"`
}
