package services

import (
	"context"
	"strings"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// InternshipPage is one page of the public listing
type InternshipPage struct {
	Internships []*models.Internship
	Total       int64
	Page        int
	PerPage     int
	Pages       int
}

// InternshipService defines the interface for internship operations
type InternshipService interface {
	List(ctx context.Context, filter models.InternshipFilter, page, perPage int) (*InternshipPage, error)
	ListAll(ctx context.Context) ([]*models.Internship, error)
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	Create(ctx context.Context, companyID int64, req *dto.InternshipRequest) (*models.Internship, error)
	Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateInternshipRequest) (*models.Internship, error)
	Delete(ctx context.Context, actor auth.Actor, id int64) error
	ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error)
}

type internshipServiceImpl struct {
	internshipRepo repositories.IInternshipRepository
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(internshipRepo repositories.IInternshipRepository, logger zerolog.Logger) InternshipService {
	return &internshipServiceImpl{
		internshipRepo: internshipRepo,
		logger:         logger,
	}
}

// List returns a page of internships. Only active internships are listed.
func (s *internshipServiceImpl) List(ctx context.Context, filter models.InternshipFilter, page, perPage int) (*InternshipPage, error) {
	filter.ActiveOnly = true
	if page < 1 {
		page = helpers.DefaultPage
	}
	offset, limit := helpers.CalculateOffsetLimit(page, perPage)

	items, total, err := s.internshipRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &InternshipPage{
		Internships: items,
		Total:       total,
		Page:        page,
		PerPage:     int(limit),
		Pages:       helpers.TotalPages(total, int(limit)),
	}, nil
}

// ListAll returns every internship, active or not
func (s *internshipServiceImpl) ListAll(ctx context.Context) ([]*models.Internship, error) {
	items, _, err := s.internshipRepo.List(ctx, models.InternshipFilter{}, 0, 0)
	return items, err
}

// GetByID retrieves an internship
func (s *internshipServiceImpl) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	return s.internshipRepo.GetByID(ctx, id)
}

// Create publishes a new internship for a company
func (s *internshipServiceImpl) Create(ctx context.Context, companyID int64, req *dto.InternshipRequest) (*models.Internship, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title cannot be empty")
	}

	in := &models.Internship{
		CompanyID:      companyID,
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		Requirements:   optional(req.Requirements),
		Location:       optional(req.Location),
		Duration:       optional(req.Duration),
		Stipend:        optional(req.Stipend),
		Type:           optional(req.Type),
		RequiredSkills: normalizeSkills(req.RequiredSkills),
		RequiredMajor:  optional(req.RequiredMajor),
		IsActive:       true,
		Deadline:       req.Deadline,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}

	if err := s.internshipRepo.Create(ctx, in); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internshipID", in.ID).Int64("companyID", companyID).Msg("Internship created")

	// Reload so the joined company fields are populated
	return s.internshipRepo.GetByID(ctx, in.ID)
}

// Update applies a partial update. Only the owning company or an admin may update.
func (s *internshipServiceImpl) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateInternshipRequest) (*models.Internship, error) {
	in, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidateInternshipOwnership(actor, in); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title", "title cannot be empty")
		}
		in.Title = title
	}
	if req.Description != nil {
		in.Description = strings.TrimSpace(*req.Description)
	}
	setIfPresent(&in.Requirements, req.Requirements)
	setIfPresent(&in.Location, req.Location)
	setIfPresent(&in.Duration, req.Duration)
	setIfPresent(&in.Stipend, req.Stipend)
	setIfPresent(&in.Type, req.Type)
	setIfPresent(&in.RequiredMajor, req.RequiredMajor)
	if req.RequiredSkills != nil {
		in.RequiredSkills = normalizeSkills(req.RequiredSkills)
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if req.Deadline != nil {
		in.Deadline = req.Deadline
	}

	if err := s.internshipRepo.Update(ctx, in); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internshipID", id).Int64("actorID", actor.UserID).Msg("Internship updated")
	return in, nil
}

// Delete removes an internship. Only the owning company or an admin may delete.
func (s *internshipServiceImpl) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	in, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.ValidateInternshipOwnership(actor, in); err != nil {
		return err
	}
	if err := s.internshipRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("internshipID", id).Int64("actorID", actor.UserID).Msg("Internship deleted")
	return nil
}

// ListByCompany returns every internship a company posted
func (s *internshipServiceImpl) ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error) {
	return s.internshipRepo.ListByCompany(ctx, companyID)
}
