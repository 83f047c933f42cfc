package services

import (
	"context"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/events"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/matching"
	"github.com/futureintern/platform/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// ApplicationService defines the interface for application operations
type ApplicationService interface {
	Apply(ctx context.Context, studentID int64, req *dto.ApplyRequest) (*models.Application, error)
	ListMine(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListForInternship(ctx context.Context, actor auth.Actor, internshipID int64) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	GetByID(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, actor auth.Actor, id int64, status string) (*models.Application, error)
	Withdraw(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error)
	Delete(ctx context.Context, actor auth.Actor, id int64) error
}

type applicationServiceImpl struct {
	applicationRepo repositories.IApplicationRepository
	internshipRepo  repositories.IInternshipRepository
	userRepo        repositories.IUserRepository
	publisher       events.Publisher
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repositories.IApplicationRepository,
	internshipRepo repositories.IInternshipRepository,
	userRepo repositories.IUserRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		internshipRepo:  internshipRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// Apply submits a student's application and records the match score at this moment
func (s *applicationServiceImpl) Apply(ctx context.Context, studentID int64, req *dto.ApplyRequest) (*models.Application, error) {
	internship, err := s.internshipRepo.GetByID(ctx, req.InternshipID)
	if err != nil {
		return nil, err
	}
	if !internship.IsActive {
		return nil, apperrors.ErrInternshipInactive
	}
	if internship.Deadline != nil && internship.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("application deadline has passed")
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	score, _ := matching.Score(student, internship)
	app := &models.Application{
		StudentID:    studentID,
		InternshipID: internship.ID,
		Status:       models.StatusPending,
		CoverLetter:  optional(req.CoverLetter),
		MatchScore:   &score,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", studentID).
		Int64("internshipID", internship.ID).
		Float64("matchScore", score).
		Msg("Application submitted")

	app.Internship = internship
	return app, nil
}

// ListMine returns the student's applications, newest first
func (s *applicationServiceImpl) ListMine(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return s.applicationRepo.ListByStudent(ctx, studentID)
}

// ListForInternship returns the applicants of an internship the actor manages
func (s *applicationServiceImpl) ListForInternship(ctx context.Context, actor auth.Actor, internshipID int64) ([]*models.Application, error) {
	internship, err := s.internshipRepo.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageInternship(actor, internship) {
		return nil, apperrors.NewForbiddenError("you do not have permission to view these applications")
	}
	return s.applicationRepo.ListByInternship(ctx, internshipID)
}

// ListAll returns every application
func (s *applicationServiceImpl) ListAll(ctx context.Context) ([]*models.Application, error) {
	return s.applicationRepo.ListAll(ctx)
}

// GetByID returns an application visible to the actor
func (s *applicationServiceImpl) GetByID(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewApplication(actor, app) {
		return nil, apperrors.NewForbiddenError("you do not have permission to view this application")
	}
	return app, nil
}

// UpdateStatus moves an application to a new status and publishes the change
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, actor auth.Actor, id int64, status string) (*models.Application, error) {
	newStatus := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !newStatus.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, "invalid status: "+status).
			WithDetails(map[string]interface{}{"allowed": models.ApplicationStatuses})
	}

	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanReviewApplication(actor, app) {
		return nil, apperrors.NewForbiddenError("you do not have permission to update this application")
	}

	return s.changeStatus(ctx, actor, app, newStatus)
}

// Withdraw lets a student pull back an application that is still open
func (s *applicationServiceImpl) Withdraw(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStudent() || app.StudentID != actor.UserID {
		return nil, apperrors.NewForbiddenError("you do not have permission to withdraw this application")
	}
	if !app.Status.CanWithdraw() {
		return nil, apperrors.ErrCannotWithdraw
	}

	return s.changeStatus(ctx, actor, app, models.StatusWithdrawn)
}

func (s *applicationServiceImpl) changeStatus(ctx context.Context, actor auth.Actor, app *models.Application, newStatus models.ApplicationStatus) (*models.Application, error) {
	oldStatus := app.Status
	if err := s.applicationRepo.UpdateStatus(ctx, app.ID, newStatus); err != nil {
		return nil, err
	}
	app.Status = newStatus
	app.UpdatedAt = time.Now()
	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(newStatus)).Inc()

	if oldStatus != newStatus {
		evt := events.ApplicationStatusChanged{
			ApplicationID: app.ID,
			StudentID:     app.StudentID,
			InternshipID:  app.InternshipID,
			OldStatus:     string(oldStatus),
			NewStatus:     string(newStatus),
			ChangedBy:     actor.UserID,
		}
		// The status is already stored; a lost notification is not fatal
		if err := s.publisher.PublishApplicationStatusChanged(ctx, evt); err != nil {
			s.logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Failed to publish status change")
		}
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("from", string(oldStatus)).
		Str("to", string(newStatus)).
		Int64("actorID", actor.UserID).
		Msg("Application status changed")
	return app, nil
}

// Delete removes an application. Only the applicant or an admin may delete.
func (s *applicationServiceImpl) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDeleteApplication(actor, app) {
		return apperrors.NewForbiddenError("you do not have permission to delete this application")
	}
	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("applicationID", id).Int64("actorID", actor.UserID).Msg("Application deleted")
	return nil
}
