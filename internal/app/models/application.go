package models

import "time"

// Application links a student to an internship. One per (student, internship).
type Application struct {
	ID           int64             `json:"id" db:"id"`
	StudentID    int64             `json:"student_id" db:"student_id"`
	InternshipID int64             `json:"internship_id" db:"internship_id"`
	Status       ApplicationStatus `json:"status" db:"status"`
	CoverLetter  *string           `json:"cover_letter,omitempty" db:"cover_letter"`
	MatchScore   *float64          `json:"match_score,omitempty" db:"match_score"`
	AppliedAt    time.Time         `json:"applied_at" db:"applied_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`

	// Relations, no db tag
	Internship *Internship `json:"internship,omitempty"`
	Student    *User       `json:"student,omitempty"`
}

// SavedInternship is a student's bookmark
type SavedInternship struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	InternshipID int64     `json:"internship_id" db:"internship_id"`
	SavedAt      time.Time `json:"saved_at" db:"saved_at"`
}

// RankedEntry is one row of an admin "top N" list
type RankedEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
