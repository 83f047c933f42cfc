package dto

import (
	"time"

	"github.com/futureintern/platform/internal/app/models"
)

// CompanyData is the company reference embedded in an internship
type CompanyData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Location string `json:"location,omitempty"`
}

// InternshipResponse is the public shape of an internship
type InternshipResponse struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Requirements   string      `json:"requirements,omitempty"`
	Location       string      `json:"location,omitempty"`
	Duration       string      `json:"duration,omitempty"`
	Stipend        string      `json:"stipend,omitempty"`
	Type           string      `json:"type,omitempty"`
	RequiredSkills []string    `json:"required_skills"`
	RequiredMajor  string      `json:"required_major,omitempty"`
	IsActive       bool        `json:"is_active"`
	Deadline       *time.Time  `json:"deadline,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	CompanyID      int64       `json:"company_id"`
	Company        CompanyData `json:"company"`
}

// NewInternshipResponse maps an internship model to its response
func NewInternshipResponse(in *models.Internship) *InternshipResponse {
	if in == nil {
		return nil
	}
	skills := in.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return &InternshipResponse{
		ID:             in.ID,
		Title:          in.Title,
		Description:    in.Description,
		Requirements:   models.StringValue(in.Requirements),
		Location:       models.StringValue(in.Location),
		Duration:       models.StringValue(in.Duration),
		Stipend:        models.StringValue(in.Stipend),
		Type:           models.StringValue(in.Type),
		RequiredSkills: skills,
		RequiredMajor:  models.StringValue(in.RequiredMajor),
		IsActive:       in.IsActive,
		Deadline:       in.Deadline,
		CreatedAt:      in.CreatedAt,
		UpdatedAt:      in.UpdatedAt,
		CompanyID:      in.CompanyID,
		Company: CompanyData{
			ID:       in.CompanyID,
			Name:     in.CompanyName,
			Logo:     in.CompanyLogo,
			Location: in.CompanyLocation,
		},
	}
}

// NewInternshipListResponse maps a slice of internships
func NewInternshipListResponse(items []*models.Internship) []*InternshipResponse {
	out := make([]*InternshipResponse, 0, len(items))
	for _, in := range items {
		out = append(out, NewInternshipResponse(in))
	}
	return out
}

// InternshipEnvelope wraps a single internship
type InternshipEnvelope struct {
	Internship *InternshipResponse `json:"internship"`
}

// InternshipListResponse wraps an unpaginated list
type InternshipListResponse struct {
	Internships []*InternshipResponse `json:"internships"`
	Total       int                   `json:"total"`
}

// InternshipPageResponse is one page of the public listing
type InternshipPageResponse struct {
	Internships []*InternshipResponse `json:"internships"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PerPage     int                   `json:"per_page"`
	Pages       int                   `json:"pages"`
}

// InternshipListQuery binds the public listing's query string
type InternshipListQuery struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Location  string `form:"location"`
	Type      string `form:"type"`
	CompanyID int64  `form:"company_id"`
}

// InternshipRequest is the body for create. On update every field is optional.
type InternshipRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	Description    string     `json:"description" binding:"required"`
	Requirements   string     `json:"requirements"`
	Location       string     `json:"location" binding:"max=200"`
	Duration       string     `json:"duration" binding:"max=100"`
	Stipend        string     `json:"stipend" binding:"max=100"`
	Type           string     `json:"type" binding:"max=50"`
	RequiredSkills []string   `json:"required_skills"`
	RequiredMajor  string     `json:"required_major" binding:"max=100"`
	IsActive       *bool      `json:"is_active"`
	Deadline       *time.Time `json:"deadline"`
}

// UpdateInternshipRequest is a partial update
type UpdateInternshipRequest struct {
	Title          *string    `json:"title" binding:"omitempty,max=200"`
	Description    *string    `json:"description"`
	Requirements   *string    `json:"requirements"`
	Location       *string    `json:"location" binding:"omitempty,max=200"`
	Duration       *string    `json:"duration" binding:"omitempty,max=100"`
	Stipend        *string    `json:"stipend" binding:"omitempty,max=100"`
	Type           *string    `json:"type" binding:"omitempty,max=50"`
	RequiredSkills []string   `json:"required_skills"`
	RequiredMajor  *string    `json:"required_major" binding:"omitempty,max=100"`
	IsActive       *bool      `json:"is_active"`
	Deadline       *time.Time `json:"deadline"`
}
