package controllers

import (
	"net/http"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserController handles profile, upload and saved-internship requests
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile returns the signed-in user's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfileResponse{Profile: dto.NewUserResponse(user)}))
}

// UpdateProfile applies a partial profile update
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfileResponse{Profile: dto.NewUserResponse(user)}))
}

// GetUser returns another user's public profile
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserEnvelope{User: dto.NewUserResponse(user)}))
}

// UploadCV stores a student's CV and merges the skills found in it
// @Summary Upload CV
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param cv formData file true "PDF or Word document"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /users/upload-cv [post]
func (c *UserController) UploadCV(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	file, err := ctx.FormFile("cv")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFile)
		return
	}

	user, err := c.userService.UploadCV(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfileResponse{Profile: dto.NewUserResponse(user)}))
}

// DeleteCV removes the stored CV
func (c *UserController) DeleteCV(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	if err := c.userService.DeleteCV(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "CV deleted"}))
}

// UploadLogo stores a company logo
func (c *UserController) UploadLogo(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	file, err := ctx.FormFile("logo")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFile)
		return
	}

	user, err := c.userService.UploadLogo(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfileResponse{Profile: dto.NewUserResponse(user)}))
}

// DeleteLogo removes the company logo
func (c *UserController) DeleteLogo(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	if err := c.userService.DeleteLogo(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Logo deleted"}))
}

// SavedInternships lists the student's bookmarks
func (c *UserController) SavedInternships(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}

	items, err := c.userService.SavedInternships(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InternshipListResponse{
		Internships: dto.NewInternshipListResponse(items),
		Total:       len(items),
	}))
}

// SaveInternship bookmarks an internship
func (c *UserController) SaveInternship(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.SaveInternship(ctx.Request.Context(), userID, internshipID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MessageResponse{Message: "Internship saved"}))
}

// UnsaveInternship removes a bookmark
func (c *UserController) UnsaveInternship(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.UnsaveInternship(ctx.Request.Context(), userID, internshipID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Internship removed from saved list"}))
}

// IsSaved reports whether an internship is bookmarked
func (c *UserController) IsSaved(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
		return
	}
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	saved, err := c.userService.IsSaved(ctx.Request.Context(), userID, internshipID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SavedCheckResponse{IsSaved: saved}))
}
