package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/cvparser"
	"github.com/futureintern/platform/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// UserService defines the interface for profile, upload and bookmark operations
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	UploadCV(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	DeleteCV(ctx context.Context, userID int64) error
	UploadLogo(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	DeleteLogo(ctx context.Context, userID int64) error
	SavedInternships(ctx context.Context, userID int64) ([]*models.Internship, error)
	SaveInternship(ctx context.Context, userID, internshipID int64) error
	UnsaveInternship(ctx context.Context, userID, internshipID int64) error
	IsSaved(ctx context.Context, userID, internshipID int64) (bool, error)
}

// SkillExtractor reads skills out of a stored CV
type SkillExtractor func(path string) ([]string, error)

type userServiceImpl struct {
	userRepo       repositories.IUserRepository
	internshipRepo repositories.IInternshipRepository
	savedRepo      repositories.ISavedInternshipRepository
	fileStorage    filestorage.FileStorage
	extractSkills  SkillExtractor
	logger         zerolog.Logger
}

// NewUserService creates a new UserService. A nil extractor falls back to the PDF parser.
func NewUserService(
	userRepo repositories.IUserRepository,
	internshipRepo repositories.IInternshipRepository,
	savedRepo repositories.ISavedInternshipRepository,
	fileStorage filestorage.FileStorage,
	extractSkills SkillExtractor,
	logger zerolog.Logger,
) UserService {
	if extractSkills == nil {
		extractSkills = cvparser.ExtractSkillsFromFile
	}
	return &userServiceImpl{
		userRepo:       userRepo,
		internshipRepo: internshipRepo,
		savedRepo:      savedRepo,
		fileStorage:    fileStorage,
		extractSkills:  extractSkills,
		logger:         logger,
	}
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func setIfPresent(dst **string, src *string) {
	if src == nil {
		return
	}
	*dst = optional(*src)
}

// UpdateProfile applies a partial update. Fields belonging to another role are ignored.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "name cannot be empty")
		}
		user.Name = name
	}
	setIfPresent(&user.Bio, req.Bio)
	setIfPresent(&user.Location, req.Location)
	setIfPresent(&user.Phone, req.Phone)

	switch user.Role {
	case models.RoleStudent:
		setIfPresent(&user.University, req.University)
		setIfPresent(&user.Major, req.Major)
		setIfPresent(&user.Interests, req.Interests)
		if req.GPA != nil {
			user.GPA = req.GPA
		}
		if req.Skills != nil {
			user.Skills = normalizeSkills(req.Skills)
		}
	case models.RoleCompany:
		if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
			return nil, apperrors.NewValidationError("company_name", "company name cannot be empty")
		}
		setIfPresent(&user.CompanyName, req.CompanyName)
		setIfPresent(&user.CompanyDescription, req.CompanyDescription)
		setIfPresent(&user.CompanyWebsite, req.CompanyWebsite)
		setIfPresent(&user.CompanyLocation, req.CompanyLocation)
		setIfPresent(&user.Industry, req.Industry)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return user, nil
}

func (s *userServiceImpl) requireRole(ctx context.Context, userID int64, role models.RoleType) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("only %s accounts can do this", role))
	}
	return user, nil
}

func (s *userServiceImpl) cvSkills(url string) ([]string, error) {
	full, err := s.fileStorage.Resolve(url)
	if err != nil {
		return nil, err
	}
	return s.extractSkills(full)
}

// removeStoredFile deletes a previous upload. Failures are logged only.
func (s *userServiceImpl) removeStoredFile(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.fileStorage.Delete(*path); err != nil {
		s.logger.Warn().Err(err).Str("path", *path).Msg("Failed to delete previous upload")
	}
}

// UploadCV stores a resume and merges skills found in it into the profile
func (s *userServiceImpl) UploadCV(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.requireRole(ctx, userID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if err := filestorage.CVPolicy.Validate(file); err != nil {
		return nil, err
	}

	path, err := s.fileStorage.Store(file, filestorage.CVPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to store cv: %w", err)
	}

	skills := user.Skills
	extracted, err := s.cvSkills(path)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not extract skills from cv")
	} else if len(extracted) > 0 {
		skills = cvparser.MergeSkills(user.Skills, extracted)
		s.logger.Info().Int64("userID", userID).Int("found", len(extracted)).Msg("Skills extracted from cv")
	}

	if err := s.userRepo.UpdateCV(ctx, userID, &path, skills); err != nil {
		_ = s.fileStorage.Delete(path)
		return nil, err
	}
	s.removeStoredFile(user.CVPath)

	user.CVPath = &path
	user.Skills = skills
	return user, nil
}

// DeleteCV removes the stored resume. Extracted skills are kept.
func (s *userServiceImpl) DeleteCV(ctx context.Context, userID int64) error {
	user, err := s.requireRole(ctx, userID, models.RoleStudent)
	if err != nil {
		return err
	}
	if user.CVPath == nil || *user.CVPath == "" {
		return apperrors.NewResourceNotFoundError("no cv uploaded")
	}

	if err := s.userRepo.UpdateCV(ctx, userID, nil, user.Skills); err != nil {
		return err
	}
	s.removeStoredFile(user.CVPath)
	return nil
}

// UploadLogo stores a company logo
func (s *userServiceImpl) UploadLogo(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.requireRole(ctx, userID, models.RoleCompany)
	if err != nil {
		return nil, err
	}
	if err := filestorage.LogoPolicy.Validate(file); err != nil {
		return nil, err
	}

	path, err := s.fileStorage.Store(file, filestorage.LogoPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to store logo: %w", err)
	}
	if err := s.userRepo.UpdateLogo(ctx, userID, &path); err != nil {
		_ = s.fileStorage.Delete(path)
		return nil, err
	}
	s.removeStoredFile(user.CompanyLogo)

	user.CompanyLogo = &path
	return user, nil
}

// DeleteLogo removes the company logo
func (s *userServiceImpl) DeleteLogo(ctx context.Context, userID int64) error {
	user, err := s.requireRole(ctx, userID, models.RoleCompany)
	if err != nil {
		return err
	}
	if user.CompanyLogo == nil || *user.CompanyLogo == "" {
		return apperrors.NewResourceNotFoundError("no logo uploaded")
	}

	if err := s.userRepo.UpdateLogo(ctx, userID, nil); err != nil {
		return err
	}
	s.removeStoredFile(user.CompanyLogo)
	return nil
}

// SavedInternships lists the user's bookmarks, newest first
func (s *userServiceImpl) SavedInternships(ctx context.Context, userID int64) ([]*models.Internship, error) {
	return s.savedRepo.List(ctx, userID)
}

// SaveInternship bookmarks an internship
func (s *userServiceImpl) SaveInternship(ctx context.Context, userID, internshipID int64) error {
	if _, err := s.internshipRepo.GetByID(ctx, internshipID); err != nil {
		return err
	}
	return s.savedRepo.Save(ctx, userID, internshipID)
}

// UnsaveInternship removes a bookmark
func (s *userServiceImpl) UnsaveInternship(ctx context.Context, userID, internshipID int64) error {
	return s.savedRepo.Remove(ctx, userID, internshipID)
}

// IsSaved reports whether the internship is bookmarked
func (s *userServiceImpl) IsSaved(ctx context.Context, userID, internshipID int64) (bool, error) {
	return s.savedRepo.IsSaved(ctx, userID, internshipID)
}
