package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type adminFixture struct {
	users       *MockUserRepository
	internships *MockInternshipRepository
	apps        *MockApplicationRepository
	svc         AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:       new(MockUserRepository),
		internships: new(MockInternshipRepository),
		apps:        new(MockApplicationRepository),
	}
	log := zerolog.Nop()
	internshipSvc := NewInternshipService(f.internships, log)
	applicationSvc := NewApplicationService(f.apps, f.internships, f.users, new(MockPublisher), log)
	f.svc = NewAdminService(f.users, f.internships, f.apps, internshipSvc, applicationSvc, log)
	return f
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	f := newAdminFixture()
	admin := auth.Actor{UserID: 1, Role: models.RoleAdmin}

	err := f.svc.DeleteUser(context.Background(), admin, 1)
	assert.ErrorIs(t, err, apperrors.ErrCannotDeleteSelf)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateUser_CompanyIsVerified(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := f.svc.CreateUser(ctx, &dto.CreateUserRequest{
		Name: "Globex", Email: "HR@globex.io", Password: "secret123", Role: "company",
	})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "hr@globex.io", user.Email)
	assert.Equal(t, "Globex", *user.CompanyName)
}

func TestListUsers_InvalidRole(t *testing.T) {
	f := newAdminFixture()
	_, err := f.svc.ListUsers(context.Background(), "professor")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStats(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	f.users.On("CountByRole", ctx).Return(map[models.RoleType]int64{
		models.RoleStudent: 12, models.RoleCompany: 4, models.RoleAdmin: 1,
	}, nil)
	f.internships.On("Count", ctx).Return(int64(9), int64(7), nil)
	f.apps.On("CountByStatus", ctx).Return(map[models.ApplicationStatus]int64{
		models.StatusPending: 5, models.StatusAccepted: 2,
	}, nil)
	f.users.On("TopCompanies", ctx, uint64(5)).Return([]models.RankedEntry{{ID: 20, Name: "Acme", Count: 6}}, nil)
	f.users.On("TopStudents", ctx, uint64(5)).Return(nil, nil)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(17), stats.Users.Total)
	assert.Equal(t, int64(4), stats.Users.Companies)
	assert.Equal(t, int64(7), stats.Internships.Active)
	assert.Equal(t, int64(7), stats.Applications.Total)
	assert.Equal(t, int64(0), stats.Applications.ByStatus["rejected"])
	assert.Len(t, stats.Applications.ByStatus, len(models.ApplicationStatuses))
	assert.Len(t, stats.TopCompanies, 1)
	assert.NotNil(t, stats.TopStudents)
}

func TestApproveCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("not a company", func(t *testing.T) {
		f := newAdminFixture()
		f.users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Role: models.RoleStudent}, nil)
		_, err := f.svc.ApproveCompany(ctx, 3)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("already verified", func(t *testing.T) {
		f := newAdminFixture()
		f.users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20, Role: models.RoleCompany, IsVerified: true}, nil)
		user, err := f.svc.ApproveCompany(ctx, 20)
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
		f.users.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending", func(t *testing.T) {
		f := newAdminFixture()
		f.users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20, Role: models.RoleCompany}, nil)
		f.users.On("SetVerified", ctx, int64(20), true).Return(nil)
		user, err := f.svc.ApproveCompany(ctx, 20)
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
	})
}

func importWorkbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportInternships(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	buf := importWorkbook(t,
		[]interface{}{"Title", "Company Name", "Description", "Skills"},
		[]interface{}{"Backend Intern", "Acme", "Build APIs", "Go, SQL"},
		[]interface{}{"Frontend Intern", "ACME", "", "React"},
		[]interface{}{"Data Intern", "Unknown Co", "Crunch numbers", ""},
		[]interface{}{"", "Acme", "Missing title"},
	)

	acme := &models.User{ID: 20, Role: models.RoleCompany}
	f.users.On("GetCompanyByName", ctx, "acme").Return(acme, nil).Once()
	f.users.On("GetCompanyByName", ctx, "unknown co").Return(nil, apperrors.ErrUserNotFound).Once()
	f.users.On("GetCompanyByName", ctx, PartnerCompanyName).Return(nil, apperrors.ErrUserNotFound).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == PartnerCompanyEmail && u.IsVerified && u.Role == models.RoleCompany
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 99
	}).Return(nil).Once()

	f.internships.On("ExistsByTitle", ctx, int64(20), "Backend Intern").Return(true, nil)
	f.internships.On("ExistsByTitle", ctx, int64(20), "Frontend Intern").Return(false, nil)
	f.internships.On("ExistsByTitle", ctx, int64(99), "Data Intern").Return(false, nil)

	var created []*models.Internship
	f.internships.On("Create", ctx, mock.AnythingOfType("*models.Internship")).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*models.Internship)) }).
		Return(nil)

	result, err := f.svc.ImportInternships(ctx, buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 5")

	require.Len(t, created, 2)
	assert.Equal(t, int64(20), created[0].CompanyID)
	assert.Equal(t, "Frontend Intern", created[0].Description)
	assert.Equal(t, []string{"React"}, created[0].RequiredSkills)
	assert.True(t, created[0].IsActive)
	require.NotNil(t, created[0].Deadline)
	assert.Equal(t, int64(99), created[1].CompanyID)
	f.users.AssertExpectations(t)
}

func TestImportInternships_NotAWorkbook(t *testing.T) {
	f := newAdminFixture()
	_, err := f.svc.ImportInternships(context.Background(), strings.NewReader("title,company\n"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
