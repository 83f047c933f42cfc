package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/app/controllers"
	"github.com/futureintern/platform/internal/app/migrations"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/app/routes"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/chatbot"
	"github.com/futureintern/platform/internal/config"
	"github.com/futureintern/platform/internal/db"
	"github.com/futureintern/platform/internal/events"
	"github.com/futureintern/platform/internal/middleware"
	pkgauth "github.com/futureintern/platform/internal/pkg/auth"
	"github.com/futureintern/platform/internal/pkg/email"
	"github.com/futureintern/platform/internal/pkg/filestorage"
	"github.com/futureintern/platform/internal/pkg/helpers"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/futureintern/platform/internal/pkg/validation"
	"github.com/futureintern/platform/internal/pkg/websocket"
	"github.com/futureintern/platform/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// maxRequestBody caps JSON and multipart bodies. Upload policies apply
// tighter per-file limits.
const maxRequestBody = 12 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *repositories.Repositories
	JWTService  *pkgauth.JWTService
	FileStorage *filestorage.LocalStorage
	EventBus    *events.Bus
	Redis       *db.Redis // nil when Redis is unreachable

	AuthService           services.AuthService
	UserService           services.UserService
	InternshipService     services.InternshipService
	ApplicationService    services.ApplicationService
	RecommendationService services.RecommendationService
	AdminService          services.AdminService
	ChatbotService        services.ChatbotService
	NotificationService   *services.NotificationService
	NotificationHub       *websocket.Hub
	TokenCleanup          *services.TokenCleanupService

	Controllers    routes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations and seeds the admin account.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.AdminAccount{Email: cfg.Admin.Email, Password: cfg.Admin.Password}
	if err := seed.EnsureAdmin(ctx, repositories.NewUserRepository(database.Pool), admin, lgr); err != nil {
		// The API is usable without the seeded admin
		lgr.Error().Err(err).Msg("Failed to ensure default admin, proceeding anyway")
	}

	return database, nil
}

// SetupRedis connects to Redis for rate limiting. Without Redis the server
// still starts and rate limiting is disabled.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *db.Redis {
	if !cfg.RateLimit.Enabled {
		lgr.Info().Msg("Rate limiting disabled by configuration")
		return nil
	}

	redis, err := db.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, rate limiting disabled")
		return nil
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return redis
}

// BuildDependencies initializes repositories, services and controllers.
// The notification subscribers, the websocket hub and the token cleanup run
// until ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, redis *db.Redis, lgr zerolog.Logger) (*Dependencies, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{Logger: lgr, Redis: redis}
	deps.Repos = repositories.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, strings.TrimRight(cfg.Server.PublicURL, "/")+"/uploads",
		lgr.With().Str("component", "storage").Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromEmail:   cfg.SMTP.From,
		UseTLS:      cfg.SMTP.UseTLS,
		FrontendURL: cfg.Frontend.URL,
	}, lgr.With().Str("component", "email").Logger())

	deps.EventBus = events.NewBus(lgr.With().Str("component", "events").Logger())

	repos := deps.Repos
	deps.AuthService = services.NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		repos.PasswordResetTokenRepository,
		deps.JWTService,
		emailService,
		lgr,
	)
	deps.UserService = services.NewUserService(
		repos.UserRepository,
		repos.InternshipRepository,
		repos.SavedInternshipRepository,
		deps.FileStorage,
		nil,
		lgr,
	)
	deps.InternshipService = services.NewInternshipService(repos.InternshipRepository, lgr)
	deps.ApplicationService = services.NewApplicationService(
		repos.ApplicationRepository,
		repos.InternshipRepository,
		repos.UserRepository,
		deps.EventBus,
		lgr,
	)
	deps.RecommendationService = services.NewRecommendationService(
		repos.UserRepository,
		repos.InternshipRepository,
		repos.ApplicationRepository,
		lgr,
	)
	deps.AdminService = services.NewAdminService(
		repos.UserRepository,
		repos.InternshipRepository,
		repos.ApplicationRepository,
		deps.InternshipService,
		deps.ApplicationService,
		lgr,
	)

	selector := chatbot.New(chatbot.Config{
		APIKey:  cfg.Chatbot.APIKey,
		APIURL:  cfg.Chatbot.APIURL,
		Model:   cfg.Chatbot.Model,
		Timeout: cfg.Chatbot.Timeout,
	}, chatbot.WithLogger(lgr.With().Str("component", "chatbot").Logger()))
	lgr.Info().Bool("llmEnabled", selector.LLMEnabled()).Msg("Chatbot configured")
	deps.ChatbotService = services.NewChatbotService(selector, lgr)

	deps.NotificationService = services.NewNotificationService(repos.UserRepository, repos.InternshipRepository, emailService, lgr)
	if err := deps.EventBus.HandleApplicationStatusChanged(ctx, deps.NotificationService.HandleApplicationStatusChanged); err != nil {
		return nil, fmt.Errorf("failed to subscribe notifications: %w", err)
	}

	deps.NotificationHub = websocket.NewHub(lgr.With().Str("component", "websocket").Logger())
	go deps.NotificationHub.Run(ctx)
	if err := deps.EventBus.HandleApplicationStatusChanged(ctx, deps.NotificationHub.HandleApplicationStatusChanged); err != nil {
		return nil, fmt.Errorf("failed to subscribe live notifications: %w", err)
	}

	deps.TokenCleanup = services.NewTokenCleanupService(map[string]services.ExpiredTokenStore{
		"refresh_tokens":        repos.TokenRepository,
		"password_reset_tokens": repos.PasswordResetTokenRepository,
	}, lgr.With().Str("component", "token-cleanup").Logger())
	go deps.TokenCleanup.Run(ctx, cfg.JWT.CleanupInterval)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = routes.Controllers{
		Auth:           controllers.NewAuthController(deps.AuthService, lgr),
		User:           controllers.NewUserController(deps.UserService, lgr),
		Internship:     controllers.NewInternshipController(deps.InternshipService, lgr),
		Application:    controllers.NewApplicationController(deps.ApplicationService, lgr),
		Recommendation: controllers.NewRecommendationController(deps.RecommendationService, lgr),
		Admin:          controllers.NewAdminController(deps.AdminService, lgr),
		Chatbot:        controllers.NewChatbotController(deps.ChatbotService, lgr),
		Notifications:  websocket.NewHandler(deps.NotificationHub, cfg.Server.CORSOrigins, lgr.With().Str("component", "websocket").Logger()),
	}

	return deps, nil
}

// rateLimits builds the limiters for login/registration and the chatbot.
func rateLimits(cfg *config.Config, redis *db.Redis) routes.Limits {
	if redis == nil {
		return routes.Limits{}
	}
	return routes.Limits{
		Auth: middleware.RateLimit(redis, middleware.RateLimitConfig{
			Name:     "auth",
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}),
		Chatbot: middleware.RateLimit(redis, middleware.RateLimitConfig{
			Name:     "chatbot",
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}),
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(lgr.With().Str("component", "http").Logger()),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORSOrigins),
		middleware.MaxBodySize(maxRequestBody),
	)

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, rateLimits(cfg, deps.Redis))

	router.Static("/uploads", cfg.Server.StoragePath)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
