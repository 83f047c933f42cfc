package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	pkgauth "github.com/futureintern/platform/internal/pkg/auth"
	"github.com/futureintern/platform/internal/pkg/email"
	"github.com/futureintern/platform/internal/pkg/importer"
	"github.com/futureintern/platform/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

const (
	// PartnerCompanyName owns imported rows whose company is not registered
	PartnerCompanyName = "FutureIntern Partner Network"
	// PartnerCompanyEmail is the login of the partner company account
	PartnerCompanyEmail = "partners@futureintern.com"
	// ImportedDeadline is how long imported internships stay open
	ImportedDeadline = 30 * 24 * time.Hour
	// topListSize is the length of the dashboard rankings
	topListSize = 5
)

// AdminService defines the interface for administrator operations
type AdminService interface {
	ListUsers(ctx context.Context, role string) ([]*models.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor auth.Actor, id int64) error
	ListInternships(ctx context.Context) ([]*models.Internship, error)
	DeleteInternship(ctx context.Context, actor auth.Actor, id int64) error
	ListApplications(ctx context.Context) ([]*models.Application, error)
	SetApplicationStatus(ctx context.Context, actor auth.Actor, id int64, status string) (*models.Application, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	PendingCompanies(ctx context.Context) ([]*models.User, error)
	ApproveCompany(ctx context.Context, id int64) (*models.User, error)
	ImportInternships(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

type adminServiceImpl struct {
	userRepo           repositories.IUserRepository
	internshipRepo     repositories.IInternshipRepository
	applicationRepo    repositories.IApplicationRepository
	internshipService  InternshipService
	applicationService ApplicationService
	logger             zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	internshipRepo repositories.IInternshipRepository,
	applicationRepo repositories.IApplicationRepository,
	internshipService InternshipService,
	applicationService ApplicationService,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		userRepo:           userRepo,
		internshipRepo:     internshipRepo,
		applicationRepo:    applicationRepo,
		internshipService:  internshipService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// ListUsers returns every user, or only those of one role
func (s *adminServiceImpl) ListUsers(ctx context.Context, role string) ([]*models.User, error) {
	r := models.RoleType(strings.ToLower(strings.TrimSpace(role)))
	if r != "" && !r.IsValid() {
		return nil, apperrors.NewValidationError("role", "role must be student, company or admin")
	}
	return s.userRepo.List(ctx, r)
}

// CreateUser creates an account of any role. Admin-created accounts start verified.
func (s *adminServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("role", "role must be student, company or admin")
	}
	if err := pkgauth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   hash,
		Role:       role,
		IsVerified: true,
	}
	if role == models.RoleCompany {
		name := req.CompanyName
		if strings.TrimSpace(name) == "" {
			name = req.Name
		}
		user.CompanyName = optional(name)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("Admin created user")
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, actor auth.Actor, id int64) error {
	if actor.UserID == id {
		return apperrors.ErrCannotDeleteSelf
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", id).Int64("actorID", actor.UserID).Msg("Admin deleted user")
	return nil
}

// ListInternships returns every internship, active or not
func (s *adminServiceImpl) ListInternships(ctx context.Context) ([]*models.Internship, error) {
	return s.internshipService.ListAll(ctx)
}

// DeleteInternship removes any internship
func (s *adminServiceImpl) DeleteInternship(ctx context.Context, actor auth.Actor, id int64) error {
	return s.internshipService.Delete(ctx, actor, id)
}

// ListApplications returns every application
func (s *adminServiceImpl) ListApplications(ctx context.Context) ([]*models.Application, error) {
	return s.applicationService.ListAll(ctx)
}

// SetApplicationStatus changes the status of any application
func (s *adminServiceImpl) SetApplicationStatus(ctx context.Context, actor auth.Actor, id int64, status string) (*models.Application, error) {
	return s.applicationService.UpdateStatus(ctx, actor, id, status)
}

// Stats aggregates the dashboard counters
func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	totalInternships, activeInternships, err := s.internshipRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.applicationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	topCompanies, err := s.userRepo.TopCompanies(ctx, topListSize)
	if err != nil {
		return nil, err
	}
	topStudents, err := s.userRepo.TopStudents(ctx, topListSize)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		Users: dto.UserStats{
			Students:  byRole[models.RoleStudent],
			Companies: byRole[models.RoleCompany],
			Admins:    byRole[models.RoleAdmin],
		},
		Internships: dto.InternshipStats{
			Total:  totalInternships,
			Active: activeInternships,
		},
		Applications: dto.ApplicationStats{
			ByStatus: make(map[string]int64, len(models.ApplicationStatuses)),
		},
		TopCompanies: topCompanies,
		TopStudents:  topStudents,
	}
	for _, n := range byRole {
		stats.Users.Total += n
	}
	for _, status := range models.ApplicationStatuses {
		n := byStatus[status]
		stats.Applications.ByStatus[string(status)] = n
		stats.Applications.Total += n
	}
	if stats.TopCompanies == nil {
		stats.TopCompanies = []models.RankedEntry{}
	}
	if stats.TopStudents == nil {
		stats.TopStudents = []models.RankedEntry{}
	}
	return stats, nil
}

// PendingCompanies lists companies awaiting approval
func (s *adminServiceImpl) PendingCompanies(ctx context.Context) ([]*models.User, error) {
	verified := false
	return s.userRepo.ListCompanies(ctx, &verified)
}

// ApproveCompany marks a company as verified. Approving twice is not an error.
func (s *adminServiceImpl) ApproveCompany(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCompany {
		return nil, apperrors.NewBadRequestError("user is not a company")
	}
	if user.IsVerified {
		return user, nil
	}

	if err := s.userRepo.SetVerified(ctx, id, true); err != nil {
		return nil, err
	}
	user.IsVerified = true
	s.logger.Info().Int64("companyID", id).Msg("Company approved")
	return user, nil
}

// partnerCompany returns the partner account, creating it on first use
func (s *adminServiceImpl) partnerCompany(ctx context.Context) (*models.User, error) {
	company, err := s.userRepo.GetCompanyByName(ctx, PartnerCompanyName)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	secret, err := email.GenerateToken()
	if err != nil {
		return nil, err
	}
	hash, err := pkgauth.HashPassword(secret)
	if err != nil {
		return nil, err
	}
	name := PartnerCompanyName
	company = &models.User{
		Name:        PartnerCompanyName,
		Email:       PartnerCompanyEmail,
		Password:    hash,
		Role:        models.RoleCompany,
		IsVerified:  true,
		CompanyName: &name,
	}
	if err := s.userRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("companyID", company.ID).Msg("Partner company created")
	return company, nil
}

// ImportInternships creates internships from an .xlsx workbook. Rows whose
// title already exists for the resolved company are skipped.
func (s *adminServiceImpl) ImportInternships(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, rowErrs, err := importer.ParseInternships(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	result := &dto.ImportResult{Errors: []string{}}
	for _, re := range rowErrs {
		result.Errors = append(result.Errors, re.Error())
	}

	companies := make(map[string]*models.User)
	var partner *models.User
	deadline := time.Now().Add(ImportedDeadline)

	for _, row := range rows {
		company, err := s.resolveCompany(ctx, row.CompanyName, companies)
		if err != nil {
			result.Errors = append(result.Errors, importer.RowError{Line: row.Line, Reason: err.Error()}.Error())
			continue
		}
		if company == nil {
			if partner == nil {
				if partner, err = s.partnerCompany(ctx); err != nil {
					return nil, fmt.Errorf("failed to prepare partner company: %w", err)
				}
			}
			company = partner
		}

		exists, err := s.internshipRepo.ExistsByTitle(ctx, company.ID, row.Title)
		if err != nil {
			result.Errors = append(result.Errors, importer.RowError{Line: row.Line, Reason: err.Error()}.Error())
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		in := &models.Internship{
			CompanyID:      company.ID,
			Title:          row.Title,
			Description:    row.Description,
			Requirements:   optional(row.Requirements),
			Location:       optional(row.Location),
			Duration:       optional(row.Duration),
			Stipend:        optional(row.Stipend),
			Type:           optional(row.Type),
			RequiredSkills: normalizeSkills(row.Skills),
			RequiredMajor:  optional(row.Major),
			IsActive:       true,
			Deadline:       &deadline,
		}
		if in.Description == "" {
			in.Description = row.Title
		}
		if err := s.internshipRepo.Create(ctx, in); err != nil {
			result.Errors = append(result.Errors, importer.RowError{Line: row.Line, Reason: err.Error()}.Error())
			continue
		}
		result.Created++
	}

	metrics.InternshipsImportedTotal.Add(float64(result.Created))
	s.logger.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Internship import finished")
	return result, nil
}

// resolveCompany finds a registered company by name. It returns nil, nil when
// the name is blank or unknown.
func (s *adminServiceImpl) resolveCompany(ctx context.Context, name string, cache map[string]*models.User) (*models.User, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, nil
	}
	if c, ok := cache[key]; ok {
		return c, nil
	}

	company, err := s.userRepo.GetCompanyByName(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			cache[key] = nil
			return nil, nil
		}
		return nil, err
	}
	cache[key] = company
	return company, nil
}
