package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleCompany RoleType = "company"
	RoleAdmin   RoleType = "admin"
)

// IsValid reports whether r is a known role
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under review"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in lifecycle order
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// IsValid reports whether s is a known status
func (s ApplicationStatus) IsValid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether a student may still withdraw
func (s ApplicationStatus) CanWithdraw() bool {
	return s == StatusPending || s == StatusUnderReview
}
