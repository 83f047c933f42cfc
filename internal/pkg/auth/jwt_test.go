package auth

import (
	"testing"
	"time"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "futureintern-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 42, Email: "sara@example.com", Role: models.RoleStudent}

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.RefreshExpiresAt, time.Minute)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "sara@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "futureintern-test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	pair, err := svc.GenerateTokenPair(&models.User{ID: 1, Email: "a@b.co", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	pair, err := newTestJWTService(time.Hour).GenerateTokenPair(&models.User{ID: 1, Email: "a@b.co", Role: models.RoleAdmin})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_RejectsUnknownRole(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	claims := &Claims{
		UserID: 7,
		Email:  "x@y.co",
		Role:   "INSTRUCTOR",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "abc.def.ghi", want: "abc.def.ghi"},
		{header: "Bearer ", wantErr: true},
		{header: "", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidFormat, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}

func TestPasswordPolicy(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("secret123"))
	assert.ErrorIs(t, ValidatePasswordStrength("abc1"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePasswordStrength("12345678"), ErrPasswordNoLetter)
	assert.ErrorIs(t, ValidatePasswordStrength("abcdefgh"), ErrPasswordNoDigit)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}
