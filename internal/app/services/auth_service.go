package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/repositories"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/auth"
	"github.com/futureintern/platform/internal/pkg/email"
	"github.com/futureintern/platform/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// PasswordResetTTL is how long a reset link stays valid
const PasswordResetTTL = time.Hour

// AuthService defines authentication and account recovery operations
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error)
	RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authServiceImpl struct {
	userRepo     repositories.IUserRepository
	tokenRepo    repositories.ITokenRepository
	resetRepo    repositories.IPasswordResetTokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		resetRepo:    resetRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// normalizeSkills trims, drops blanks and removes case-insensitive duplicates
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (s *authServiceImpl) createAccount(ctx context.Context, user *models.User, password string) error {
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return apperrors.NewValidationError("password", err.Error())
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Account registered")
	return nil
}

// RegisterStudent registers a new student account
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error) {
	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Role:       models.RoleStudent,
		University: optional(req.University),
		Major:      optional(req.Major),
		GPA:        req.GPA,
		Skills:     normalizeSkills(req.Skills),
		Interests:  optional(req.Interests),
		Location:   optional(req.Location),
		Phone:      optional(req.Phone),
	}
	if err := s.createAccount(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "Student registered successfully",
		User:    dto.NewUserResponse(user),
	}, nil
}

// RegisterCompany registers a new company account. Companies start unverified
// until an admin approves them.
func (s *authServiceImpl) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegisterResponse, error) {
	user := &models.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Role:               models.RoleCompany,
		CompanyName:        optional(req.CompanyName),
		CompanyDescription: optional(req.CompanyDescription),
		CompanyWebsite:     optional(req.CompanyWebsite),
		CompanyLocation:    optional(req.CompanyLocation),
		Industry:           optional(req.Industry),
	}
	if err := s.createAccount(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "Company registered successfully",
		User:    dto.NewUserResponse(user),
	}, nil
}

// Login authenticates a user
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new access token
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	// Consuming revokes the old token, so it cannot be replayed
	userID, err := s.tokenRepo.ConsumeToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.generateTokenResponse(ctx, user)
}

// Me returns the authenticated user
func (s *authServiceImpl) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ForgotPassword emails a reset link. An unknown address is not an error so
// callers cannot discover which accounts exist.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, address string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(address)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error finding user: %w", err)
	}

	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	// Only the newest link stays valid
	if err := s.resetRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to delete previous reset tokens")
	}
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(PasswordResetTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
		return fmt.Errorf("error sending reset email: %w", err)
	}
	s.logger.Info().Int64("userID", user.ID).Msg("Password reset email sent")
	return nil
}

// ResetPassword sets a new password using a reset token and signs out every session
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, expiry, used, err := s.resetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}
	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(expiry) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	if err := auth.ValidatePasswordStrength(newPassword); err != nil {
		return apperrors.NewValidationError("new_password", err.Error())
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.resetRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh tokens after password reset")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

// generateTokenResponse issues a token pair and stores the refresh token
func (s *authServiceImpl) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("refresh token storage error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		User:         dto.NewUserResponse(user),
	}, nil
}
