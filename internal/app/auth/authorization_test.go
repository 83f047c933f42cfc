package auth

import (
	"testing"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCanManageInternship(t *testing.T) {
	in := &models.Internship{ID: 1, CompanyID: 10}

	assert.True(t, CanManageInternship(Actor{UserID: 10, Role: models.RoleCompany}, in))
	assert.True(t, CanManageInternship(Actor{UserID: 99, Role: models.RoleAdmin}, in))
	assert.False(t, CanManageInternship(Actor{UserID: 11, Role: models.RoleCompany}, in))
	assert.False(t, CanManageInternship(Actor{UserID: 10, Role: models.RoleStudent}, in))
	assert.False(t, CanManageInternship(Actor{UserID: 10, Role: models.RoleCompany}, nil))

	err := ValidateInternshipOwnership(Actor{UserID: 11, Role: models.RoleCompany}, in)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApplicationAccess(t *testing.T) {
	app := &models.Application{
		ID:         5,
		StudentID:  3,
		Internship: &models.Internship{ID: 1, CompanyID: 10},
	}
	student := Actor{UserID: 3, Role: models.RoleStudent}
	otherStudent := Actor{UserID: 4, Role: models.RoleStudent}
	owner := Actor{UserID: 10, Role: models.RoleCompany}
	otherCompany := Actor{UserID: 12, Role: models.RoleCompany}
	admin := Actor{UserID: 1, Role: models.RoleAdmin}

	assert.True(t, CanViewApplication(student, app))
	assert.True(t, CanViewApplication(owner, app))
	assert.True(t, CanViewApplication(admin, app))
	assert.False(t, CanViewApplication(otherStudent, app))
	assert.False(t, CanViewApplication(otherCompany, app))

	assert.True(t, CanReviewApplication(owner, app))
	assert.True(t, CanReviewApplication(admin, app))
	assert.False(t, CanReviewApplication(student, app))

	assert.True(t, CanDeleteApplication(student, app))
	assert.True(t, CanDeleteApplication(admin, app))
	assert.False(t, CanDeleteApplication(owner, app))
}

func TestApplicationAccess_WithoutInternship(t *testing.T) {
	app := &models.Application{StudentID: 3}
	assert.False(t, CanReviewApplication(Actor{UserID: 10, Role: models.RoleCompany}, app))
}
