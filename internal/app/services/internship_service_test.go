package services

import (
	"context"
	"testing"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInternshipList_ForcesActiveAndPaginates(t *testing.T) {
	repo := new(MockInternshipRepository)
	svc := NewInternshipService(repo, zerolog.Nop())
	ctx := context.Background()

	items := []*models.Internship{{ID: 1}, {ID: 2}}
	repo.On("List", ctx, models.InternshipFilter{Search: "go", ActiveOnly: true}, uint64(20), uint64(20)).
		Return(items, int64(45), nil)

	page, err := svc.List(ctx, models.InternshipFilter{Search: "go"}, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(45), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.PerPage)
	assert.Equal(t, 3, page.Pages)
	assert.Len(t, page.Internships, 2)
}

func TestInternshipCreate_DefaultsActive(t *testing.T) {
	repo := new(MockInternshipRepository)
	svc := NewInternshipService(repo, zerolog.Nop())
	ctx := context.Background()

	var stored *models.Internship
	repo.On("Create", ctx, mock.AnythingOfType("*models.Internship")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Internship)
			stored.ID = 10
		}).
		Return(nil)
	repo.On("GetByID", ctx, int64(10)).Return(&models.Internship{ID: 10, CompanyID: 20, Title: "Backend Intern", IsActive: true}, nil)

	in, err := svc.Create(ctx, 20, &dto.InternshipRequest{
		Title:          " Backend Intern ",
		Description:    "Build APIs",
		RequiredSkills: []string{"Go", "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), in.ID)

	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "Backend Intern", stored.Title)
	assert.Equal(t, []string{"Go"}, stored.RequiredSkills)
	assert.Nil(t, stored.Location)
}

func TestInternshipUpdate_Ownership(t *testing.T) {
	repo := new(MockInternshipRepository)
	svc := NewInternshipService(repo, zerolog.Nop())
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(10)).Return(&models.Internship{ID: 10, CompanyID: 20, Title: "Backend Intern", IsActive: true}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*models.Internship")).Return(nil)

	inactive := false
	_, err := svc.Update(ctx, auth.Actor{UserID: 21, Role: models.RoleCompany}, 10, &dto.UpdateInternshipRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, auth.Actor{UserID: 20, Role: models.RoleCompany}, 10, &dto.UpdateInternshipRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Backend Intern", updated.Title)
}

func TestInternshipDelete_AdminMayDeleteAny(t *testing.T) {
	repo := new(MockInternshipRepository)
	svc := NewInternshipService(repo, zerolog.Nop())
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(10)).Return(&models.Internship{ID: 10, CompanyID: 20}, nil)
	repo.On("Delete", ctx, int64(10)).Return(nil)

	require.NoError(t, svc.Delete(ctx, auth.Actor{UserID: 1, Role: models.RoleAdmin}, 10))
	repo.AssertCalled(t, "Delete", ctx, int64(10))
}
