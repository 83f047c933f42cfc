package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterStudentRequest represents a student sign-up
type RegisterStudentRequest struct {
	Name       string   `json:"name" binding:"required,min=2,max=100"`
	Email      string   `json:"email" binding:"required,email"`
	Password   string   `json:"password" binding:"required,password"`
	University string   `json:"university" binding:"max=100"`
	Major      string   `json:"major" binding:"max=100"`
	GPA        *float64 `json:"gpa" binding:"omitempty,min=0,max=4"`
	Skills     []string `json:"skills"`
	Interests  string   `json:"interests"`
	Location   string   `json:"location" binding:"max=100"`
	Phone      string   `json:"phone" binding:"max=20"`
}

// RegisterCompanyRequest represents a company sign-up
type RegisterCompanyRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=100"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,password"`
	CompanyName        string `json:"company_name" binding:"required,max=100"`
	CompanyDescription string `json:"company_description"`
	CompanyWebsite     string `json:"company_website" binding:"omitempty,url"`
	CompanyLocation    string `json:"company_location" binding:"max=200"`
	Industry           string `json:"industry" binding:"max=100"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

// RegisterResponse is returned by both registration endpoints
type RegisterResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}
