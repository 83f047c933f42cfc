package models

import "time"

// Internship defines the model based on the 'internships' table
type Internship struct {
	ID             int64      `json:"id" db:"id"`
	CompanyID      int64      `json:"company_id" db:"company_id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	Requirements   *string    `json:"requirements,omitempty" db:"requirements"`
	Location       *string    `json:"location,omitempty" db:"location"`
	Duration       *string    `json:"duration,omitempty" db:"duration"`
	Stipend        *string    `json:"stipend,omitempty" db:"stipend"`
	Type           *string    `json:"type,omitempty" db:"type"`
	RequiredSkills []string   `json:"required_skills" db:"required_skills"`
	RequiredMajor  *string    `json:"required_major,omitempty" db:"required_major"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	Deadline       *time.Time `json:"deadline,omitempty" db:"deadline"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// Joined from the owning company, no db tag
	CompanyName     string `json:"-"`
	CompanyLogo     string `json:"-"`
	CompanyLocation string `json:"-"`
}

// InternshipFilter narrows the public listing
type InternshipFilter struct {
	Search     string
	Location   string
	Type       string
	CompanyID  int64
	ActiveOnly bool
}
