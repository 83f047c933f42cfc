package dto

import (
	"time"

	"github.com/futureintern/platform/internal/app/models"
)

// UserResponse is the public shape of a user. Role-specific fields are
// omitted for other roles.
type UserResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Location     string    `json:"location,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`

	University string   `json:"university,omitempty"`
	Major      string   `json:"major,omitempty"`
	GPA        *float64 `json:"gpa,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Interests  string   `json:"interests,omitempty"`
	ResumeURL  string   `json:"resume_url,omitempty"`

	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyLocation    string `json:"company_location,omitempty"`
	CompanyLogo        string `json:"company_logo,omitempty"`
	Industry           string `json:"industry,omitempty"`
}

// NewUserResponse maps a user model to its response
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		ProfileImage: models.StringValue(u.ProfileImage),
		Bio:          models.StringValue(u.Bio),
		Location:     models.StringValue(u.Location),
		Phone:        models.StringValue(u.Phone),
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}

	switch u.Role {
	case models.RoleStudent:
		resp.University = models.StringValue(u.University)
		resp.Major = models.StringValue(u.Major)
		resp.GPA = u.GPA
		resp.Skills = u.Skills
		resp.Interests = models.StringValue(u.Interests)
		resp.ResumeURL = models.StringValue(u.CVPath)
	case models.RoleCompany:
		resp.CompanyName = models.StringValue(u.CompanyName)
		resp.CompanyDescription = models.StringValue(u.CompanyDescription)
		resp.CompanyWebsite = models.StringValue(u.CompanyWebsite)
		resp.CompanyLocation = models.StringValue(u.CompanyLocation)
		resp.CompanyLogo = models.StringValue(u.CompanyLogo)
		resp.Industry = models.StringValue(u.Industry)
	}
	return resp
}

// NewUserListResponse maps a slice of users
func NewUserListResponse(users []*models.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// ProfileResponse wraps a single profile
type ProfileResponse struct {
	Profile *UserResponse `json:"profile"`
}

// UserEnvelope wraps a single user
type UserEnvelope struct {
	User *UserResponse `json:"user"`
}

// UserListResponse wraps a list of users
type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int             `json:"total"`
}

// CompanyListResponse wraps a list of company accounts
type CompanyListResponse struct {
	Companies []*UserResponse `json:"companies"`
	Total     int             `json:"total"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name               *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Bio                *string  `json:"bio"`
	Location           *string  `json:"location" binding:"omitempty,max=100"`
	Phone              *string  `json:"phone" binding:"omitempty,max=20"`
	University         *string  `json:"university" binding:"omitempty,max=100"`
	Major              *string  `json:"major" binding:"omitempty,max=100"`
	GPA                *float64 `json:"gpa" binding:"omitempty,min=0,max=4"`
	Skills             []string `json:"skills"`
	Interests          *string  `json:"interests"`
	CompanyName        *string  `json:"company_name" binding:"omitempty,max=100"`
	CompanyDescription *string  `json:"company_description"`
	CompanyWebsite     *string  `json:"company_website" binding:"omitempty,url"`
	CompanyLocation    *string  `json:"company_location" binding:"omitempty,max=200"`
	Industry           *string  `json:"industry" binding:"omitempty,max=100"`
}

// CreateUserRequest is an admin-created account
type CreateUserRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,password"`
	Role        string `json:"role" binding:"required,oneof=student company admin"`
	CompanyName string `json:"company_name" binding:"max=100"`
}

// SavedCheckResponse reports whether an internship is bookmarked
type SavedCheckResponse struct {
	IsSaved bool `json:"is_saved"`
}
