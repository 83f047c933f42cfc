package controllers

import (
	"net/http"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ApplicationController handles applying, reviewing and withdrawing
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Apply submits an application for the signed-in student
// @Summary Apply to an internship
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationEnvelope}
// @Failure 400 {object} dto.ErrorResponse "Internship inactive or past deadline"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /applications/apply [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	var req dto.ApplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.Apply(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ApplicationEnvelope{Application: dto.NewApplicationResponse(app)}))
}

// ListMine returns the signed-in student's applications
func (c *ApplicationController) ListMine(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	apps, err := c.applicationService.ListMine(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicationListResponse(apps)))
}

// ListForInternship returns the applicants of one of the caller's internships
func (c *ApplicationController) ListForInternship(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.applicationService.ListForInternship(ctx.Request.Context(), actor, internshipID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicationListResponse(apps)))
}

// Get returns one application visible to the caller
func (c *ApplicationController) Get(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.GetByID(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ApplicationEnvelope{Application: dto.NewApplicationResponse(app)}))
}

// UpdateStatus moves an application to a new status. Mounted for companies
// under /applications and for admins under /admin/applications.
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ApplicationEnvelope{Application: dto.NewApplicationResponse(app)}))
}

// Withdraw pulls back a pending or under-review application
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.Withdraw(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ApplicationEnvelope{Application: dto.NewApplicationResponse(app)}))
}

// Delete removes an application
func (c *ApplicationController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Application deleted"}))
}
