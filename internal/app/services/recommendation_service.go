package services

import (
	"context"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/pkg/matching"
	"github.com/rs/zerolog"
)

// DefaultRecommendationLimit is used when the caller gives no limit
const DefaultRecommendationLimit = 10

// RecommendationService ranks open internships for a student
type RecommendationService interface {
	Recommend(ctx context.Context, studentID int64, limit int, minScore float64) ([]matching.Result, error)
}

type recommendationServiceImpl struct {
	userRepo        repositories.IUserRepository
	internshipRepo  repositories.IInternshipRepository
	applicationRepo repositories.IApplicationRepository
	logger          zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	userRepo repositories.IUserRepository,
	internshipRepo repositories.IInternshipRepository,
	applicationRepo repositories.IApplicationRepository,
	logger zerolog.Logger,
) RecommendationService {
	return &recommendationServiceImpl{
		userRepo:        userRepo,
		internshipRepo:  internshipRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// Recommend scores every active internship the student has not applied to
func (s *recommendationServiceImpl) Recommend(ctx context.Context, studentID int64, limit int, minScore float64) ([]matching.Result, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	internships, _, err := s.internshipRepo.List(ctx, models.InternshipFilter{ActiveOnly: true}, 0, 0)
	if err != nil {
		return nil, err
	}

	applied, err := s.applicationRepo.AppliedInternshipIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results := matching.Rank(student, internships, applied, minScore, limit)
	s.logger.Debug().
		Int64("studentID", studentID).
		Int("candidates", len(internships)).
		Int("returned", len(results)).
		Msg("Recommendations computed")
	return results, nil
}
