package services

import (
	"context"
	"fmt"

	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/events"
	"github.com/futureintern/platform/internal/pkg/email"
	"github.com/rs/zerolog"
)

// NotificationService reacts to domain events with emails
type NotificationService struct {
	userRepo       repositories.IUserRepository
	internshipRepo repositories.IInternshipRepository
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	userRepo repositories.IUserRepository,
	internshipRepo repositories.IInternshipRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		userRepo:       userRepo,
		internshipRepo: internshipRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

// HandleApplicationStatusChanged emails the student about the new status.
// Withdrawals are made by the student and are not announced.
func (s *NotificationService) HandleApplicationStatusChanged(ctx context.Context, evt events.ApplicationStatusChanged) error {
	if evt.ChangedBy == evt.StudentID {
		return nil
	}

	student, err := s.userRepo.GetByID(ctx, evt.StudentID)
	if err != nil {
		return fmt.Errorf("failed to load student %d: %w", evt.StudentID, err)
	}
	internship, err := s.internshipRepo.GetByID(ctx, evt.InternshipID)
	if err != nil {
		return fmt.Errorf("failed to load internship %d: %w", evt.InternshipID, err)
	}

	if err := s.emailService.SendApplicationStatusEmail(student.Email, student.Name, internship.Title, evt.NewStatus); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}

	s.logger.Info().
		Int64("applicationID", evt.ApplicationID).
		Int64("studentID", evt.StudentID).
		Str("status", evt.NewStatus).
		Msg("Status change email sent")
	return nil
}
