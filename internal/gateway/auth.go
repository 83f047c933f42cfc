package gateway

import (
	"context"
	"errors"
	"fmt"
)

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	client *Client
}

// StudentRegistration is the body for student sign-up.
type StudentRegistration struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	University string   `json:"university,omitempty"`
	Major      string   `json:"major,omitempty"`
	GPA        *float64 `json:"gpa,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Interests  string   `json:"interests,omitempty"`
	Location   string   `json:"location,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

// CompanyRegistration is the body for company sign-up.
type CompanyRegistration struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyLocation    string `json:"company_location,omitempty"`
	Industry           string `json:"industry,omitempty"`
}

// Credentials is the login body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what the server returns on login and refresh.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	User         *User  `json:"user,omitempty"`
}

type registerResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// RegistrationResult reports how far the chained student registration got.
// Registration itself succeeded whenever the result is non-nil.
type RegistrationResult struct {
	User User
	// LoggedIn is false when the automatic login failed; LoginErr says why
	LoggedIn bool
	LoginErr error
	// CVUploaded is false when no CV was given or the upload failed
	CVUploaded bool
	CVErr      error
}

// ErrNoToken is returned when login succeeds without an access token.
var ErrNoToken = errors.New("server response did not include an access token")

// RegisterStudent registers, logs in, and uploads the CV if one is given.
// Failures after the registration call are recorded on the result instead of
// being returned, so the caller can prompt for a manual login.
func (s *AuthService) RegisterStudent(ctx context.Context, reg StudentRegistration, cv *Upload) (*RegistrationResult, error) {
	var created registerResponse
	if err := s.client.post(ctx, "/auth/register/student", reg, &created); err != nil {
		return nil, err
	}

	result := &RegistrationResult{User: created.User}

	if _, err := s.Login(ctx, Credentials{Email: reg.Email, Password: reg.Password}); err != nil {
		s.client.log.Warn().Err(err).Str("email", reg.Email).Msg("auto-login after registration failed")
		result.LoginErr = err
		return result, nil
	}
	result.LoggedIn = true

	if cv != nil {
		user, err := s.client.Users.UploadCV(ctx, *cv)
		if err != nil {
			s.client.log.Warn().Err(err).Str("email", reg.Email).Msg("CV upload after registration failed")
			result.CVErr = err
			return result, nil
		}
		result.CVUploaded = true
		if user != nil {
			result.User = *user
		}
	}

	return result, nil
}

// RegisterCompany registers a company account. It does not log in.
func (s *AuthService) RegisterCompany(ctx context.Context, reg CompanyRegistration) (*User, error) {
	var created registerResponse
	if err := s.client.post(ctx, "/auth/register/company", reg, &created); err != nil {
		return nil, err
	}
	return &created.User, nil
}

// Login authenticates and stores the returned tokens in the session.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	if err := s.storeTokens(resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context) (*LoginResponse, error) {
	refresh, ok, err := s.client.session.RefreshToken()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no refresh token stored, log in again")
	}

	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/refresh", map[string]string{"refresh_token": refresh}, &resp); err != nil {
		return nil, err
	}
	if err := s.storeTokens(resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) storeTokens(resp LoginResponse) error {
	if resp.AccessToken == "" {
		return ErrNoToken
	}
	if err := s.client.session.Save(resp.AccessToken); err != nil {
		return err
	}
	if resp.RefreshToken != "" {
		return s.client.session.SaveRefreshToken(resp.RefreshToken)
	}
	return nil
}

// Logout is local only: it clears the session and runs its redirect hook.
func (s *AuthService) Logout() error {
	return s.client.session.Logout()
}

// CurrentUser returns the signed-in user, trying the profile endpoint first
// and /auth/me if that fails.
func (s *AuthService) CurrentUser(ctx context.Context) (*User, error) {
	user, err := s.client.Users.Profile(ctx)
	if err == nil {
		return user, nil
	}
	s.client.log.Debug().Err(err).Msg("profile lookup failed, trying /auth/me")

	var me struct {
		User *User `json:"user"`
	}
	if err := s.client.get(ctx, "/auth/me", nil, &me); err != nil {
		return nil, err
	}
	if me.User == nil {
		return nil, fmt.Errorf("current user missing from response")
	}
	return me.User, nil
}

// ForgotPassword asks the server to email a reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.client.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.client.post(ctx, "/auth/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	}, nil)
}
