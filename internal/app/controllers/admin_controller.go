package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxImportSize caps uploaded internship workbooks
const maxImportSize = 10 << 20

// AdminController handles the administrator dashboard
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListUsers lists accounts, optionally filtered by ?role=
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "student, company or admin"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx.Request.Context(), ctx.Query("role"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserListResponse{
		Users: dto.NewUserListResponse(users),
		Total: len(users),
	}))
}

// CreateUser creates an account of any role
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.adminService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UserEnvelope{User: dto.NewUserResponse(user)}))
}

// DeleteUser removes an account and everything it owns
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("adminID", actor.UserID).Int64("userID", id).Msg("User deleted by admin")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "User deleted"}))
}

// ListInternships lists every internship, active or not
func (c *AdminController) ListInternships(ctx *gin.Context) {
	items, err := c.adminService.ListInternships(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipListResponse{
		Internships: dto.NewInternshipListResponse(items),
		Total:       len(items),
	}))
}

// DeleteInternship removes any internship
func (c *AdminController) DeleteInternship(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteInternship(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Internship deleted"}))
}

// ListApplications lists every application
func (c *AdminController) ListApplications(ctx *gin.Context) {
	apps, err := c.adminService.ListApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicationListResponse(apps)))
}

// SetApplicationStatus changes the status of any application
func (c *AdminController) SetApplicationStatus(ctx *gin.Context) {
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

	app, err := c.adminService.SetApplicationStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ApplicationEnvelope{Application: dto.NewApplicationResponse(app)}))
}

// Stats returns the dashboard aggregates
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// PendingCompanies lists company accounts awaiting verification
func (c *AdminController) PendingCompanies(ctx *gin.Context) {
	companies, err := c.adminService.PendingCompanies(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompanyListResponse{
		Companies: dto.NewUserListResponse(companies),
		Total:     len(companies),
	}))
}

// ApproveCompany marks a company as verified
func (c *AdminController) ApproveCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.adminService.ApproveCompany(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserEnvelope{User: dto.NewUserResponse(user)}))
}

// ImportInternships bulk-creates internships from an .xlsx upload
// @Summary Import internships
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel workbook"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult}
// @Router /admin/internships/import [post]
func (c *AdminController) ImportInternships(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFile)
		return
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".xlsx" {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrInvalidFileType, "Only .xlsx workbooks can be imported"))
		return
	}
	if header.Size > maxImportSize {
		middleware.HandleAPIError(ctx, apperrors.ErrFileTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.adminService.ImportInternships(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Internship workbook imported")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
