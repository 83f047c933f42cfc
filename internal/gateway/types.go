package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Role is a user's account type.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under review"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// Label is the text shown to students for a status.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusPending, StatusUnderReview:
		return "Under Review"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	case StatusWithdrawn:
		return "Withdrawn"
	case "":
		return "Applied"
	default:
		return string(s)
	}
}

// StringList decodes either a JSON array of strings or a comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits a comma separated string, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// User is a student, company or admin account.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	ProfileImage string     `json:"profile_image,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Location     string     `json:"location,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`

	University string     `json:"university,omitempty"`
	Major      string     `json:"major,omitempty"`
	GPA        *float64   `json:"gpa,omitempty"`
	Skills     StringList `json:"skills,omitempty"`
	Interests  string     `json:"interests,omitempty"`
	ResumeURL  string     `json:"resume_url,omitempty"`

	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyLocation    string `json:"company_location,omitempty"`
	CompanyLogo        string `json:"company_logo,omitempty"`
	Industry           string `json:"industry,omitempty"`
}

// UnmarshalJSON accepts the historical aliases full_name and cv_path.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var raw struct {
		plain
		FullName string `json:"full_name"`
		CVPath   string `json:"cv_path"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.Name == "" {
		u.Name = raw.FullName
	}
	if u.ResumeURL == "" {
		u.ResumeURL = raw.CVPath
	}
	return nil
}

// DisplayName prefers the company name for company accounts.
func (u User) DisplayName() string {
	if u.Role == RoleCompany && u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}

// Company is the canonical company reference carried by an Internship.
type Company struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Location string `json:"location,omitempty"`
}

// Internship is a job listing. Company is always populated through
// normalizeCompany regardless of the shape the server used.
type Internship struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements,omitempty"`
	Location       string     `json:"location,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	Stipend        string     `json:"stipend,omitempty"`
	Type           string     `json:"type,omitempty"`
	RequiredSkills StringList `json:"required_skills,omitempty"`
	RequiredMajor  string     `json:"required_major,omitempty"`
	IsActive       bool       `json:"is_active"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	Company        Company    `json:"company"`
}

// InternshipInput is the body for create and update.
type InternshipInput struct {
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	Requirements   string     `json:"requirements,omitempty"`
	Location       string     `json:"location,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	Stipend        string     `json:"stipend,omitempty"`
	Type           string     `json:"type,omitempty"`
	RequiredSkills []string   `json:"required_skills,omitempty"`
	RequiredMajor  string     `json:"required_major,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// InternshipPage is one page of the public listing.
type InternshipPage struct {
	Internships []Internship `json:"internships"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	PerPage     int          `json:"per_page"`
	Pages       int          `json:"pages"`
}

// Application links a student to an internship.
type Application struct {
	ID           int64             `json:"id"`
	InternshipID int64             `json:"internship_id"`
	StudentID    int64             `json:"student_id"`
	Status       ApplicationStatus `json:"status"`
	CoverLetter  string            `json:"cover_letter,omitempty"`
	MatchScore   *float64          `json:"match_score,omitempty"`
	AppliedAt    *time.Time        `json:"applied_at,omitempty"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
	Internship   *Internship       `json:"internship,omitempty"`
	Student      *User             `json:"student,omitempty"`
}

// UnmarshalJSON falls back to created_at when applied_at is missing.
func (a *Application) UnmarshalJSON(b []byte) error {
	type plain Application
	var raw struct {
		plain
		CreatedAt *time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = Application(raw.plain)
	if a.AppliedAt == nil {
		a.AppliedAt = raw.CreatedAt
	}
	if a.InternshipID == 0 && a.Internship != nil {
		a.InternshipID = a.Internship.ID
	}
	return nil
}

// Recommendation is a scored internship suggestion.
type Recommendation struct {
	Internship Internship         `json:"internship"`
	Score      float64            `json:"match_score"`
	Breakdown  map[string]float64 `json:"breakdown,omitempty"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	Users struct {
		Total     int64 `json:"total"`
		Students  int64 `json:"students"`
		Companies int64 `json:"companies"`
		Admins    int64 `json:"admins"`
	} `json:"users"`
	Internships struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"internships"`
	Applications struct {
		Total    int64            `json:"total"`
		ByStatus map[string]int64 `json:"by_status"`
	} `json:"applications"`
	TopCompanies []RankedEntry `json:"top_companies"`
	TopStudents  []RankedEntry `json:"top_students"`
}

// RankedEntry is one row of a "top N" list.
type RankedEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ImportResult summarizes a bulk internship import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ChatTurn is one earlier message of the conversation. Sender is "user" or "bot".
type ChatTurn struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ChatReply is the server chatbot's answer.
type ChatReply struct {
	Response    string    `json:"response"`
	Source      string    `json:"source"`
	Topic       string    `json:"topic,omitempty"`
	IsArabic    bool      `json:"is_arabic"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
