package routes

import (
	"net/http"

	"github.com/futureintern/platform/internal/app/controllers"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Auth           *controllers.AuthController
	User           *controllers.UserController
	Internship     *controllers.InternshipController
	Application    *controllers.ApplicationController
	Recommendation *controllers.RecommendationController
	Admin          *controllers.AdminController
	Chatbot        *controllers.ChatbotController
	Notifications  *websocket.Handler
}

// Limits holds the rate limiters for abuse-prone endpoints. A nil limiter
// leaves the route unlimited.
type Limits struct {
	Auth    gin.HandlerFunc
	Chatbot gin.HandlerFunc
}

func orPass(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limits Limits,
) {
	v1 := router.Group("/api/v1")

	authLimit := orPass(limits.Auth)
	chatLimit := orPass(limits.Chatbot)

	student := authMiddleware.RoleRequired(models.RoleStudent)
	company := authMiddleware.RoleRequired(models.RoleCompany)
	companyOrAdmin := authMiddleware.RoleRequired(models.RoleCompany, models.RoleAdmin)
	studentOrAdmin := authMiddleware.RoleRequired(models.RoleStudent, models.RoleAdmin)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", authLimit, ctrl.Auth.RegisterStudent)
		auth.POST("/register/company", authLimit, ctrl.Auth.RegisterCompany)
		auth.POST("/login", authLimit, ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/forgot-password", authLimit, ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", authLimit, ctrl.Auth.ResetPassword)
		auth.GET("/me", authMiddleware.JWTAuth(), ctrl.Auth.Me)
	}

	// --- Public internship listing ---
	internships := v1.Group("/internships")
	{
		internships.GET("", ctrl.Internship.List)
		internships.GET("/:id", ctrl.Internship.Get)
	}

	// --- Chatbot (no login, rate limited) ---
	chat := v1.Group("/chatbot")
	{
		chat.POST("/chat", chatLimit, ctrl.Chatbot.Chat)
		chat.GET("/faq", ctrl.Chatbot.FAQ)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/profile", ctrl.User.GetProfile)
			users.PUT("/profile", ctrl.User.UpdateProfile)

			users.POST("/upload-cv", student, ctrl.User.UploadCV)
			users.DELETE("/delete-cv", student, ctrl.User.DeleteCV)
			users.POST("/upload-logo", company, ctrl.User.UploadLogo)
			users.DELETE("/delete-logo", company, ctrl.User.DeleteLogo)

			saved := users.Group("/saved-internships", student)
			{
				saved.GET("", ctrl.User.SavedInternships)
				saved.POST("/:id", ctrl.User.SaveInternship)
				saved.DELETE("/:id", ctrl.User.UnsaveInternship)
				saved.GET("/:id/check", ctrl.User.IsSaved)
			}

			users.GET("/:id", ctrl.User.GetUser)
		}

		internshipsProtected := authenticated.Group("/internships")
		{
			internshipsProtected.GET("/my", company, ctrl.Internship.ListMine)
			internshipsProtected.POST("", company, ctrl.Internship.Create)
			internshipsProtected.PUT("/:id", companyOrAdmin, ctrl.Internship.Update)
			internshipsProtected.DELETE("/:id", companyOrAdmin, ctrl.Internship.Delete)
		}

		applications := authenticated.Group("/applications")
		{
			applications.POST("/apply", student, ctrl.Application.Apply)
			applications.GET("/my", student, ctrl.Application.ListMine)
			applications.GET("", student, ctrl.Application.ListMine)
			applications.GET("/internship/:id", companyOrAdmin, ctrl.Application.ListForInternship)
			applications.GET("/:id", ctrl.Application.Get)
			applications.PUT("/:id/status", companyOrAdmin, ctrl.Application.UpdateStatus)
			applications.PUT("/:id/withdraw", student, ctrl.Application.Withdraw)
			applications.DELETE("/:id", studentOrAdmin, ctrl.Application.Delete)
		}

		authenticated.GET("/recommendations", student, ctrl.Recommendation.List)
		authenticated.GET("/notifications/ws", ctrl.Notifications.HandleConnection)

		admin := authenticated.Group("/admin", authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", ctrl.Admin.ListUsers)
			admin.POST("/users", ctrl.Admin.CreateUser)
			admin.DELETE("/users/:id", ctrl.Admin.DeleteUser)

			admin.GET("/internships", ctrl.Admin.ListInternships)
			admin.DELETE("/internships/:id", ctrl.Admin.DeleteInternship)
			admin.POST("/internships/import", ctrl.Admin.ImportInternships)

			admin.GET("/applications", ctrl.Admin.ListApplications)
			admin.PUT("/applications/:id/status", ctrl.Admin.SetApplicationStatus)

			admin.GET("/stats", ctrl.Admin.Stats)
			admin.GET("/companies/pending", ctrl.Admin.PendingCompanies)
			admin.PUT("/companies/:id/approve", ctrl.Admin.ApproveCompany)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
