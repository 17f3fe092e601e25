package database

import (
	"github.com/belgahub/hub/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	identity     *models.IdentityModel
	profile      *models.ProfileModel
	software     *models.SoftwareModel
	category     *models.CategoryModel
	review       *models.ReviewModel
	vote         *models.VoteModel
	partnership  *models.PartnershipModel
	notification *models.NotificationModel
	click        *models.ClickModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		identity:     models.NewIdentity(db, logger),
		profile:      models.NewProfile(db, logger),
		software:     models.NewSoftware(db, logger),
		category:     models.NewCategory(db, logger),
		review:       models.NewReview(db, logger),
		vote:         models.NewVote(db, logger),
		partnership:  models.NewPartnership(db, logger),
		notification: models.NewNotification(db, logger),
		click:        models.NewClick(db, logger),
	}
}

// Identity returns the identity model repository.
func (r *Repository) Identity() *models.IdentityModel {
	return r.identity
}

// Profile returns the profile model repository.
func (r *Repository) Profile() *models.ProfileModel {
	return r.profile
}

// Software returns the software model repository.
func (r *Repository) Software() *models.SoftwareModel {
	return r.software
}

// Category returns the category model repository.
func (r *Repository) Category() *models.CategoryModel {
	return r.category
}

// Review returns the review model repository.
func (r *Repository) Review() *models.ReviewModel {
	return r.review
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Partnership returns the partnership model repository.
func (r *Repository) Partnership() *models.PartnershipModel {
	return r.partnership
}

// Notification returns the notification model repository.
func (r *Repository) Notification() *models.NotificationModel {
	return r.notification
}

// Click returns the click model repository.
func (r *Repository) Click() *models.ClickModel {
	return r.click
}
