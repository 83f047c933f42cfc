package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/filestorage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users       *MockUserRepository
	internships *MockInternshipRepository
	saved       *MockSavedInternshipRepository
	files       *MockFileStorage
	extracted   []string
	extractErr  error
	svc         UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:       new(MockUserRepository),
		internships: new(MockInternshipRepository),
		saved:       new(MockSavedInternshipRepository),
		files:       new(MockFileStorage),
	}
	extractor := func(path string) ([]string, error) { return f.extracted, f.extractErr }
	f.svc = NewUserService(f.users, f.internships, f.saved, f.files, extractor, zerolog.Nop())
	return f
}

func TestUpdateProfile_IgnoresOtherRoleFields(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	company := &models.User{ID: 20, Name: "Acme HR", Role: models.RoleCompany}

	f.users.On("GetByID", ctx, int64(20)).Return(company, nil)
	f.users.On("Update", ctx, company).Return(nil)

	updated, err := f.svc.UpdateProfile(ctx, 20, &dto.UpdateProfileRequest{
		Industry: strPtr("Fintech"),
		Major:    strPtr("Physics"),
		Skills:   []string{"Go"},
		Bio:      strPtr("  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Fintech", *updated.Industry)
	assert.Nil(t, updated.Major)
	assert.Empty(t, updated.Skills)
	assert.Nil(t, updated.Bio)
}

func TestUpdateProfile_StudentSkills(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	student := &models.User{ID: 3, Name: "Sara", Role: models.RoleStudent, Skills: []string{"Java"}}

	f.users.On("GetByID", ctx, int64(3)).Return(student, nil)
	f.users.On("Update", ctx, student).Return(nil)

	updated, err := f.svc.UpdateProfile(ctx, 3, &dto.UpdateProfileRequest{
		Name:   strPtr(" Sara K "),
		Skills: []string{"Go", "GO", "Docker"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sara K", updated.Name)
	assert.Equal(t, []string{"Go", "Docker"}, updated.Skills)
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Role: models.RoleStudent}, nil)

	_, err := f.svc.UpdateProfile(ctx, 3, &dto.UpdateProfileRequest{Name: strPtr("   ")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUploadCV_RequiresStudent(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20, Role: models.RoleCompany}, nil)

	_, err := f.svc.UploadCV(ctx, 20, &multipart.FileHeader{Filename: "cv.pdf", Size: 1024})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	f.files.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestUploadCV_RejectsWrongType(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Role: models.RoleStudent}, nil)

	_, err := f.svc.UploadCV(ctx, 3, &multipart.FileHeader{Filename: "cv.exe", Size: 1024})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestUploadCV_MergesExtractedSkills(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	oldPath := "http://localhost:8080/uploads/cvs/old.pdf"
	newPath := "http://localhost:8080/uploads/cvs/new.pdf"
	student := &models.User{ID: 3, Role: models.RoleStudent, Skills: []string{"Go"}, CVPath: &oldPath}
	header := &multipart.FileHeader{Filename: "cv.pdf", Size: 1024}
	f.extracted = []string{"go", "Docker", "SQL"}

	f.users.On("GetByID", ctx, int64(3)).Return(student, nil)
	f.files.On("Store", header, filestorage.CVPolicy).Return(newPath, nil)
	f.files.On("Resolve", newPath).Return("/tmp/uploads/cvs/new.pdf", nil)
	f.users.On("UpdateCV", ctx, int64(3), &newPath, []string{"Go", "Docker", "SQL"}).Return(nil)
	f.files.On("Delete", oldPath).Return(nil)

	updated, err := f.svc.UploadCV(ctx, 3, header)
	require.NoError(t, err)
	assert.Equal(t, newPath, *updated.CVPath)
	assert.Equal(t, []string{"Go", "Docker", "SQL"}, updated.Skills)
	f.files.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestUploadCV_ExtractionFailureKeepsUpload(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	newPath := "http://localhost:8080/uploads/cvs/new.docx"
	header := &multipart.FileHeader{Filename: "cv.docx", Size: 1024}
	f.extractErr = errors.New("not a pdf")

	f.users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Role: models.RoleStudent, Skills: []string{"Go"}}, nil)
	f.files.On("Store", header, filestorage.CVPolicy).Return(newPath, nil)
	f.files.On("Resolve", newPath).Return("/tmp/uploads/cvs/new.docx", nil)
	f.users.On("UpdateCV", ctx, int64(3), &newPath, []string{"Go"}).Return(nil)

	updated, err := f.svc.UploadCV(ctx, 3, header)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, updated.Skills)
	f.files.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteCV_NothingUploaded(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Role: models.RoleStudent}, nil)

	err := f.svc.DeleteCV(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteLogo(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	logo := "http://localhost:8080/uploads/logos/acme.png"
	f.users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20, Role: models.RoleCompany, CompanyLogo: &logo}, nil)
	f.users.On("UpdateLogo", ctx, int64(20), (*string)(nil)).Return(nil)
	f.files.On("Delete", logo).Return(nil)

	require.NoError(t, f.svc.DeleteLogo(ctx, 20))
	f.files.AssertExpectations(t)
}

func TestSaveInternship(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.internships.On("GetByID", ctx, int64(404)).Return(nil, apperrors.ErrInternshipNotFound)
	f.internships.On("GetByID", ctx, int64(10)).Return(&models.Internship{ID: 10}, nil)
	f.saved.On("Save", ctx, int64(3), int64(10)).Return(nil)

	assert.ErrorIs(t, f.svc.SaveInternship(ctx, 3, 404), apperrors.ErrInternshipNotFound)
	require.NoError(t, f.svc.SaveInternship(ctx, 3, 10))
	f.saved.AssertNumberOfCalls(t, "Save", 1)
}
