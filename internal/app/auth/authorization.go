// Package auth holds the ownership rules shared by the services.
package auth

import (
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// IsAdmin reports whether the actor is an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsStudent reports whether the actor is a student
func (a Actor) IsStudent() bool {
	return a.Role == models.RoleStudent
}

// IsCompany reports whether the actor is a company
func (a Actor) IsCompany() bool {
	return a.Role == models.RoleCompany
}

// CanManageInternship checks if the actor may edit or delete an internship
func CanManageInternship(a Actor, in *models.Internship) bool {
	if in == nil {
		return false
	}
	return a.IsAdmin() || (a.IsCompany() && in.CompanyID == a.UserID)
}

// ValidateInternshipOwnership returns a forbidden error unless the actor manages the internship
func ValidateInternshipOwnership(a Actor, in *models.Internship) error {
	if !CanManageInternship(a, in) {
		return apperrors.NewForbiddenError("you can only manage your own internships")
	}
	return nil
}

// applicationCompanyID is the company owning the internship applied to, or 0 when not loaded
func applicationCompanyID(app *models.Application) int64 {
	if app.Internship == nil {
		return 0
	}
	return app.Internship.CompanyID
}

// CanViewApplication allows the applicant, the owning company and admins
func CanViewApplication(a Actor, app *models.Application) bool {
	if app == nil {
		return false
	}
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStudent:
		return app.StudentID == a.UserID
	case models.RoleCompany:
		return applicationCompanyID(app) == a.UserID
	}
	return false
}

// CanReviewApplication allows the owning company and admins to change the status
func CanReviewApplication(a Actor, app *models.Application) bool {
	if app == nil {
		return false
	}
	return a.IsAdmin() || (a.IsCompany() && applicationCompanyID(app) == a.UserID)
}

// CanDeleteApplication allows the applicant and admins
func CanDeleteApplication(a Actor, app *models.Application) bool {
	if app == nil {
		return false
	}
	return a.IsAdmin() || (a.IsStudent() && app.StudentID == a.UserID)
}
