package services

import (
	"context"
	"testing"
	"time"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users  *MockUserRepository
	tokens *MockTokenRepository
	resets *MockResetTokenRepository
	mail   *MockEmailService
	jwt    *auth.JWTService
	svc    AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  new(MockUserRepository),
		tokens: new(MockTokenRepository),
		resets: new(MockResetTokenRepository),
		mail:   new(MockEmailService),
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  15 * time.Minute,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "futureintern-test",
		}),
	}
	f.svc = NewAuthService(f.users, f.tokens, f.resets, f.jwt, f.mail, zerolog.Nop())
	return f
}

func TestRegisterStudent_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	var created *models.User
	f.users.On("EmailExists", ctx, "sara@example.com").Return(false, nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
			created.ID = 7
		}).
		Return(nil)

	resp, err := f.svc.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Name:     " Sara ",
		Email:    "Sara@Example.com",
		Password: "secret123",
		Major:    "Computer Science",
		Skills:   []string{"Go", " go ", "", "SQL"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Student registered successfully", resp.Message)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "student", resp.User.Role)
	assert.Equal(t, "Sara", resp.User.Name)
	assert.Equal(t, []string{"Go", "SQL"}, resp.User.Skills)
	assert.False(t, resp.User.IsVerified)

	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "secret123"))
	f.users.AssertExpectations(t)
}

func TestRegisterStudent_EmailTaken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("EmailExists", ctx, "sara@example.com").Return(true, nil)

	_, err := f.svc.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Name: "Sara", Email: "sara@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterCompany_WeakPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.RegisterCompany(context.Background(), &dto.RegisterCompanyRequest{
		Name: "Acme HR", Email: "hr@acme.io", Password: "password", CompanyName: "Acme",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	f.users.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{ID: 3, Name: "Sara", Email: "sara@example.com", Password: hash, Role: models.RoleStudent}

	f.users.On("GetByEmail", ctx, "sara@example.com").Return(user, nil)
	f.tokens.On("CreateToken", ctx, mock.AnythingOfType("string"), int64(3), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "SARA@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3), resp.User.ID)

	claims, err := f.jwt.ValidateAndExtractClaims(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	f.tokens.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	f.users.On("GetByEmail", ctx, "sara@example.com").Return(&models.User{ID: 3, Password: hash}, nil)
	f.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "sara@example.com", Password: "wrong1234"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	f.tokens.AssertNotCalled(t, "CreateToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := &models.User{ID: 3, Email: "sara@example.com", Role: models.RoleStudent}

	f.tokens.On("ConsumeToken", ctx, "old-refresh").Return(int64(3), nil)
	f.users.On("GetByID", ctx, int64(3)).Return(user, nil)
	f.tokens.On("CreateToken", ctx, mock.AnythingOfType("string"), int64(3), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := f.svc.RefreshToken(ctx, "old-refresh")
	require.NoError(t, err)
	assert.NotEqual(t, "old-refresh", resp.RefreshToken)
	f.tokens.AssertExpectations(t)
}

func TestRefreshToken_Revoked(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.tokens.On("ConsumeToken", ctx, "old-refresh").Return(int64(0), apperrors.ErrTokenRevoked)

	_, err := f.svc.RefreshToken(ctx, "old-refresh")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = f.svc.RefreshToken(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

	assert.NoError(t, f.svc.ForgotPassword(ctx, "ghost@example.com"))
	f.mail.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotPassword_SendsResetEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := &models.User{ID: 3, Name: "Sara", Email: "sara@example.com"}

	f.users.On("GetByEmail", ctx, "sara@example.com").Return(user, nil)
	f.resets.On("DeleteTokensByUserID", ctx, int64(3)).Return(nil)
	f.resets.On("CreateToken", ctx, int64(3), mock.AnythingOfType("string"), mock.MatchedBy(func(exp time.Time) bool {
		return exp.After(time.Now().Add(59*time.Minute)) && exp.Before(time.Now().Add(61*time.Minute))
	})).Return(nil)
	f.mail.On("SendPasswordResetEmail", "sara@example.com", "Sara", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, f.svc.ForgotPassword(ctx, "sara@example.com"))
	f.resets.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("used token", func(t *testing.T) {
		f := newAuthFixture()
		f.resets.On("GetTokenInfo", ctx, "tok").Return(int64(3), time.Now().Add(time.Hour), true, nil)
		assert.ErrorIs(t, f.svc.ResetPassword(ctx, "tok", "newpass123"), apperrors.ErrPasswordResetTokenUsed)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture()
		f.resets.On("GetTokenInfo", ctx, "tok").Return(int64(3), time.Now().Add(-time.Minute), false, nil)
		assert.ErrorIs(t, f.svc.ResetPassword(ctx, "tok", "newpass123"), apperrors.ErrInvalidPasswordResetToken)
	})

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		f.resets.On("GetTokenInfo", ctx, "tok").Return(int64(3), time.Now().Add(time.Hour), false, nil)
		f.users.On("UpdatePassword", ctx, int64(3), mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "newpass123")
		})).Return(nil)
		f.resets.On("MarkTokenAsUsed", ctx, "tok").Return(nil)
		f.tokens.On("RevokeAllUserTokens", ctx, int64(3)).Return(nil)

		require.NoError(t, f.svc.ResetPassword(ctx, "tok", "newpass123"))
		f.users.AssertExpectations(t)
		f.resets.AssertExpectations(t)
		f.tokens.AssertExpectations(t)
	})
}
