package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/events"
	"github.com/futureintern/platform/internal/pkg/filestorage"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.IUserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCV(ctx context.Context, userID int64, cvPath *string, skills []string) error {
	args := m.Called(ctx, userID, cvPath, skills)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLogo(ctx context.Context, userID int64, logoPath *string) error {
	args := m.Called(ctx, userID, logoPath)
	return args.Error(0)
}

func (m *MockUserRepository) ListCompanies(ctx context.Context, verified *bool) ([]*models.User, error) {
	args := m.Called(ctx, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	args := m.Called(ctx, userID, verified)
	return args.Error(0)
}

func (m *MockUserRepository) GetCompanyByName(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[models.RoleType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.RoleType]int64), args.Error(1)
}

func (m *MockUserRepository) TopCompanies(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedEntry), args.Error(1)
}

func (m *MockUserRepository) TopStudents(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedEntry), args.Error(1)
}

// MockInternshipRepository is a mock implementation of repositories.IInternshipRepository.
type MockInternshipRepository struct {
	mock.Mock
}

func (m *MockInternshipRepository) Create(ctx context.Context, in *models.Internship) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockInternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Internship), args.Error(1)
}

func (m *MockInternshipRepository) Update(ctx context.Context, in *models.Internship) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockInternshipRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInternshipRepository) List(ctx context.Context, filter models.InternshipFilter, offset, limit uint64) ([]*models.Internship, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Internship), args.Get(1).(int64), args.Error(2)
}

func (m *MockInternshipRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Internship), args.Error(1)
}

func (m *MockInternshipRepository) ExistsByTitle(ctx context.Context, companyID int64, title string) (bool, error) {
	args := m.Called(ctx, companyID, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockInternshipRepository) Count(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockApplicationRepository is a mock implementation of repositories.IApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) AppliedInternshipIDs(ctx context.Context, studentID int64) (map[int64]bool, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ApplicationStatus]int64), args.Error(1)
}

// MockSavedInternshipRepository is a mock implementation of repositories.ISavedInternshipRepository.
type MockSavedInternshipRepository struct {
	mock.Mock
}

func (m *MockSavedInternshipRepository) Save(ctx context.Context, userID, internshipID int64) error {
	args := m.Called(ctx, userID, internshipID)
	return args.Error(0)
}

func (m *MockSavedInternshipRepository) Remove(ctx context.Context, userID, internshipID int64) error {
	args := m.Called(ctx, userID, internshipID)
	return args.Error(0)
}

func (m *MockSavedInternshipRepository) IsSaved(ctx context.Context, userID, internshipID int64) (bool, error) {
	args := m.Called(ctx, userID, internshipID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedInternshipRepository) List(ctx context.Context, userID int64) ([]*models.Internship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Internship), args.Error(1)
}

// MockTokenRepository is a mock implementation of repositories.ITokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	args := m.Called(ctx, token, userID, expiryDate)
	return args.Error(0)
}

func (m *MockTokenRepository) ConsumeToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockResetTokenRepository is a mock implementation of repositories.IPasswordResetTokenRepository.
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	args := m.Called(ctx, userID, token, expiryDate)
	return args.Error(0)
}

func (m *MockResetTokenRepository) GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *MockResetTokenRepository) MarkTokenAsUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService is a mock implementation of email.EmailService.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	args := m.Called(toEmail, toName, token)
	return args.Error(0)
}

func (m *MockEmailService) SendApplicationStatusEmail(toEmail, toName, internshipTitle, status string) error {
	args := m.Called(toEmail, toName, internshipTitle, status)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishApplicationStatusChanged(ctx context.Context, evt events.ApplicationStatusChanged) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// MockFileStorage is a mock implementation of filestorage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Store(fileHeader *multipart.FileHeader, policy filestorage.UploadPolicy) (string, error) {
	args := m.Called(fileHeader, policy)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}

func (m *MockFileStorage) Resolve(fileURL string) (string, error) {
	args := m.Called(fileURL)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
