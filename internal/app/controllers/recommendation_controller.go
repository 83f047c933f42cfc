package controllers

import (
	"net/http"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RecommendationController serves personalized internship suggestions
type RecommendationController struct {
	recommendationService services.RecommendationService
	logger                zerolog.Logger
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService services.RecommendationService, logger zerolog.Logger) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// List returns the best matching internships for the signed-in student
// @Summary Recommended internships
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results (default 10)"
// @Param min_score query number false "Minimum match score between 0 and 1"
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationListResponse}
// @Router /recommendations [get]
func (c *RecommendationController) List(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	var query dto.RecommendationQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	results, err := c.recommendationService.Recommend(ctx.Request.Context(), studentID, query.Limit, query.MinScore)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]*dto.RecommendationResponse, 0, len(results))
	for _, r := range results {
		out = append(out, &dto.RecommendationResponse{
			Internship: dto.NewInternshipResponse(r.Internship),
			MatchScore: r.Score,
			Breakdown:  r.Breakdown,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.RecommendationListResponse{
		Recommendations: out,
		Total:           len(out),
	}))
}
