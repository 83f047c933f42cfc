package controllers

import (
	"net/http"
	"strings"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InternshipController handles internship listing and company-owned CRUD
type InternshipController struct {
	internshipService services.InternshipService
	logger            zerolog.Logger
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService services.InternshipService, logger zerolog.Logger) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
		logger:            logger,
	}
}

// List returns a page of active internships
// @Summary List internships
// @Tags internships
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Items per page"
// @Param search query string false "Matches title and description"
// @Param location query string false "Location filter"
// @Param type query string false "Internship type"
// @Param company_id query int false "Company filter"
// @Success 200 {object} dto.APIResponse{data=dto.InternshipPageResponse}
// @Router /internships [get]
func (c *InternshipController) List(ctx *gin.Context) {
	var query dto.InternshipListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, perPage := helpers.ParsePaginationParams(ctx)

	filter := models.InternshipFilter{
		Search:    strings.TrimSpace(query.Search),
		Location:  strings.TrimSpace(query.Location),
		Type:      strings.TrimSpace(query.Type),
		CompanyID: query.CompanyID,
	}

	result, err := c.internshipService.List(ctx.Request.Context(), filter, page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipPageResponse{
		Internships: dto.NewInternshipListResponse(result.Internships),
		Total:       result.Total,
		Page:        result.Page,
		PerPage:     result.PerPage,
		Pages:       result.Pages,
	}))
}

// Get returns one internship
func (c *InternshipController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	internship, err := c.internshipService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipEnvelope{Internship: dto.NewInternshipResponse(internship)}))
}

// Create posts a new internship for the signed-in company
// @Summary Create internship
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InternshipRequest true "Internship"
// @Success 201 {object} dto.APIResponse{data=dto.InternshipEnvelope}
// @Router /internships [post]
func (c *InternshipController) Create(ctx *gin.Context) {
	companyID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	var req dto.InternshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.Create(ctx.Request.Context(), companyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("internshipID", internship.ID).Int64("companyID", companyID).Msg("Internship created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.InternshipEnvelope{Internship: dto.NewInternshipResponse(internship)}))
}

// Update edits an internship owned by the caller (or any, for admins)
func (c *InternshipController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipEnvelope{Internship: dto.NewInternshipResponse(internship)}))
}

// Delete removes an internship owned by the caller (or any, for admins)
func (c *InternshipController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Internship deleted"}))
}

// ListMine returns every internship of the signed-in company, active or not
func (c *InternshipController) ListMine(ctx *gin.Context) {
	companyID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	items, err := c.internshipService.ListByCompany(ctx.Request.Context(), companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipListResponse{
		Internships: dto.NewInternshipListResponse(items),
		Total:       len(items),
	}))
}
