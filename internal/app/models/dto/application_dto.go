package dto

import (
	"time"

	"github.com/futureintern/platform/internal/app/models"
)

// ApplyRequest is a student's application
type ApplyRequest struct {
	InternshipID int64  `json:"internship_id" binding:"required,min=1"`
	CoverLetter  string `json:"cover_letter" binding:"max=5000"`
}

// UpdateStatusRequest moves an application to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicantData is the student summary shown to companies
type ApplicantData struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	University string   `json:"university,omitempty"`
	Major      string   `json:"major,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	ResumeURL  string   `json:"resume_url,omitempty"`
}

// ApplicationResponse is the public shape of an application
type ApplicationResponse struct {
	ID           int64               `json:"id"`
	StudentID    int64               `json:"student_id"`
	InternshipID int64               `json:"internship_id"`
	Status       string              `json:"status"`
	CoverLetter  string              `json:"cover_letter,omitempty"`
	MatchScore   *float64            `json:"match_score,omitempty"`
	AppliedAt    time.Time           `json:"applied_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Internship   *InternshipResponse `json:"internship,omitempty"`
	Student      *ApplicantData      `json:"student,omitempty"`
}

// NewApplicationResponse maps an application with whatever relations it carries
func NewApplicationResponse(a *models.Application) *ApplicationResponse {
	if a == nil {
		return nil
	}
	resp := &ApplicationResponse{
		ID:           a.ID,
		StudentID:    a.StudentID,
		InternshipID: a.InternshipID,
		Status:       string(a.Status),
		CoverLetter:  models.StringValue(a.CoverLetter),
		MatchScore:   a.MatchScore,
		AppliedAt:    a.AppliedAt,
		UpdatedAt:    a.UpdatedAt,
		Internship:   NewInternshipResponse(a.Internship),
	}
	if s := a.Student; s != nil {
		resp.Student = &ApplicantData{
			ID:         s.ID,
			Name:       s.Name,
			Email:      s.Email,
			University: models.StringValue(s.University),
			Major:      models.StringValue(s.Major),
			Skills:     s.Skills,
			ResumeURL:  models.StringValue(s.CVPath),
		}
	}
	return resp
}

// NewApplicationListResponse maps a slice of applications
func NewApplicationListResponse(apps []*models.Application) *ApplicationListResponse {
	out := make([]*ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return &ApplicationListResponse{Applications: out, Total: len(out)}
}

// ApplicationEnvelope wraps a single application
type ApplicationEnvelope struct {
	Application *ApplicationResponse `json:"application"`
}

// ApplicationListResponse wraps a list of applications
type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Total        int                    `json:"total"`
}
