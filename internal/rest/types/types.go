// Package types defines the REST API request and response payloads.
package types

import (
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
)

// SignUpRequest is the account registration payload.
type SignUpRequest struct {
	Email      string           `json:"email"`
	Password   string           `json:"password"`
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Company    string           `json:"company"`
	Role       enum.ProfileRole `json:"role"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postalCode"`
}

// SignInRequest carries sign-in credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest changes the authenticated user's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// VoteRequest casts or toggles a vote on a software.
type VoteRequest struct {
	SoftwareID int64         `json:"softwareId"`
	Type       enum.VoteType `json:"type"`
}

// ClickRequest records an outbound link click.
type ClickRequest struct {
	SoftwareID int64  `json:"softwareId"`
	Target     string `json:"target"`
}

// PartnershipDraft carries the editable fields of a partnership offer.
type PartnershipDraft struct {
	Type             enum.PartnershipType `json:"type"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	Whatsapp         string               `json:"whatsapp"`
	Location         string               `json:"location"`
	CommissionRate   *float64             `json:"commissionRate"`
	TrainingProvided bool                 `json:"trainingProvided"`
	SupportProvided  bool                 `json:"supportProvided"`
	Active           bool                 `json:"active"`
}

// Partnership builds the database entity from the draft.
func (d *PartnershipDraft) Partnership() *types.Partnership {
	return &types.Partnership{
		Type:             d.Type,
		Name:             d.Name,
		Description:      d.Description,
		Whatsapp:         d.Whatsapp,
		Location:         d.Location,
		CommissionRate:   d.CommissionRate,
		TrainingProvided: d.TrainingProvided,
		SupportProvided:  d.SupportProvided,
		Active:           d.Active,
	}
}

// SoftwareDraft carries the vendor-editable fields of a listing.
type SoftwareDraft struct {
	Name                  string   `json:"name"`
	Company               string   `json:"company"`
	Description           string   `json:"description"`
	Website               string   `json:"website"`
	DemoURL               string   `json:"demoUrl"`
	Pricing               string   `json:"pricing"`
	PriceMonthly          *float64 `json:"priceMonthly"`
	CompanySizes          []string `json:"companySizes"`
	Problems              []string `json:"problems"`
	PartnershipAvailable  bool     `json:"partnershipAvailable"`
	PurchaseAvailable     bool     `json:"purchaseAvailable"`
	SubscriptionAvailable bool     `json:"subscriptionAvailable"`
	CategoryIDs           []int64  `json:"categoryIds"`
}

// Software builds the database entity from the draft. Derived fields
// (vendor, slug, status) are filled by the service layer.
func (d *SoftwareDraft) Software() *types.Software {
	return &types.Software{
		Name:                  d.Name,
		Company:               d.Company,
		Description:           d.Description,
		Website:               d.Website,
		DemoURL:               d.DemoURL,
		Pricing:               d.Pricing,
		PriceMonthly:          d.PriceMonthly,
		CompanySizes:          d.CompanySizes,
		Problems:              d.Problems,
		PartnershipAvailable:  d.PartnershipAvailable,
		PurchaseAvailable:     d.PurchaseAvailable,
		SubscriptionAvailable: d.SubscriptionAvailable,
	}
}

// ResetPasswordRequest starts a password reset for the given email.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// ConfirmResetRequest completes a reset with the emailed token.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// CatalogResponse is the filtered catalog projection.
type CatalogResponse struct {
	Softwares []*types.Software `json:"softwares"`
	Total     int               `json:"total"`
	NoResults bool              `json:"noResults"`
}

// FeedResponse is the notification feed with its badge count.
type FeedResponse struct {
	Notifications []*types.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// BadgeResponse carries only the unread count.
type BadgeResponse struct {
	Unread int `json:"unread"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
