package database

import (
	"github.com/belgahub/hub/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	software     *service.SoftwareService
	vote         *service.VoteService
	partnership  *service.PartnershipService
	notification *service.NotificationService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	softwareModel := repository.Software()
	voteModel := repository.Vote()
	reviewModel := repository.Review()
	clickModel := repository.Click()
	partnershipModel := repository.Partnership()
	profileModel := repository.Profile()
	notificationModel := repository.Notification()

	return &Service{
		software:     service.NewSoftware(softwareModel, voteModel, reviewModel, clickModel, logger),
		vote:         service.NewVote(voteModel, softwareModel, logger),
		partnership:  service.NewPartnership(partnershipModel, profileModel, logger),
		notification: service.NewNotification(notificationModel, logger),
	}
}

// SetNotifier wires the notification queue into every service that
// fans out side effects. Called once during application setup after
// the dispatcher exists.
func (s *Service) SetNotifier(n service.Notifier) {
	s.software.SetNotifier(n)
	s.vote.SetNotifier(n)
	s.partnership.SetNotifier(n)
}

// Software returns the software service.
func (s *Service) Software() *service.SoftwareService {
	return s.software
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Partnership returns the partnership service.
func (s *Service) Partnership() *service.PartnershipService {
	return s.partnership
}

// Notification returns the notification service.
func (s *Service) Notification() *service.NotificationService {
	return s.notification
}
