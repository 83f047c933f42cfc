package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table.
// Student and company columns share the table and stay empty for other roles.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Password     string    `json:"-" db:"password_hash"`
	Role         RoleType  `json:"role" db:"role"`
	ProfileImage *string   `json:"profile_image,omitempty" db:"profile_image"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Student fields
	University *string  `json:"university,omitempty" db:"university"`
	Major      *string  `json:"major,omitempty" db:"major"`
	GPA        *float64 `json:"gpa,omitempty" db:"gpa"`
	Skills     []string `json:"skills,omitempty" db:"skills"`
	Interests  *string  `json:"interests,omitempty" db:"interests"`
	CVPath     *string  `json:"cv_path,omitempty" db:"cv_path"`

	// Company fields
	CompanyName        *string `json:"company_name,omitempty" db:"company_name"`
	CompanyDescription *string `json:"company_description,omitempty" db:"company_description"`
	CompanyWebsite     *string `json:"company_website,omitempty" db:"company_website"`
	CompanyLocation    *string `json:"company_location,omitempty" db:"company_location"`
	CompanyLogo        *string `json:"company_logo,omitempty" db:"company_logo"`
	Industry           *string `json:"industry,omitempty" db:"industry"`
}

// DisplayName returns the company name for companies and the person's name otherwise
func (u *User) DisplayName() string {
	if u.Role == RoleCompany && u.CompanyName != nil && *u.CompanyName != "" {
		return *u.CompanyName
	}
	return u.Name
}

// HasSkill reports whether the user lists skill, ignoring case
func (u *User) HasSkill(skill string) bool {
	for _, s := range u.Skills {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(skill)) {
			return true
		}
	}
	return false
}

// StringValue dereferences an optional column
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
