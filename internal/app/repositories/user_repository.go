package repositories

import (
	"context"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/repositories/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, role models.RoleType) ([]*models.User, error)

	// Authentication
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, hash string) error

	// Students
	UpdateCV(ctx context.Context, userID int64, cvPath *string, skills []string) error

	// Companies
	UpdateLogo(ctx context.Context, userID int64, logoPath *string) error
	ListCompanies(ctx context.Context, verified *bool) ([]*models.User, error)
	SetVerified(ctx context.Context, userID int64, verified bool) error
	GetCompanyByName(ctx context.Context, name string) (*models.User, error)

	// Stats
	CountByRole(ctx context.Context) (map[models.RoleType]int64, error)
	TopCompanies(ctx context.Context, limit uint64) ([]models.RankedEntry, error)
	TopStudents(ctx context.Context, limit uint64) ([]models.RankedEntry, error)
}

// UserRepository combines all user-related repositories
type UserRepository struct {
	common  *user.Repository
	student *user.StudentRepository
	company *user.CompanyRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	common := user.NewRepository(db)
	return &UserRepository{
		common:  common,
		student: user.NewStudentRepository(db),
		company: user.NewCompanyRepository(db, common),
	}
}

// Create creates a new user and sets its ID
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	id, err := r.common.CreateUser(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// Update updates a user's profile
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return r.common.UpdateUser(ctx, u)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.common.DeleteUser(ctx, id)
}

// List returns users, all roles when role is empty
func (r *UserRepository) List(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return r.common.ListUsers(ctx, role)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.common.UpdatePassword(ctx, userID, hash)
}

// UpdateCV stores a student's CV path and skills
func (r *UserRepository) UpdateCV(ctx context.Context, userID int64, cvPath *string, skills []string) error {
	return r.student.UpdateCV(ctx, userID, cvPath, skills)
}

// UpdateLogo stores a company's logo path
func (r *UserRepository) UpdateLogo(ctx context.Context, userID int64, logoPath *string) error {
	return r.company.UpdateLogo(ctx, userID, logoPath)
}

// ListCompanies returns companies, optionally filtered by verification
func (r *UserRepository) ListCompanies(ctx context.Context, verified *bool) ([]*models.User, error) {
	return r.company.ListCompanies(ctx, verified)
}

// SetVerified approves a company
func (r *UserRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	return r.company.SetVerified(ctx, userID, verified)
}

// GetCompanyByName finds a company by company name
func (r *UserRepository) GetCompanyByName(ctx context.Context, name string) (*models.User, error) {
	return r.company.GetCompanyByName(ctx, name)
}

// CountByRole counts users per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[models.RoleType]int64, error) {
	return r.common.CountByRole(ctx)
}

// TopCompanies ranks companies by posted internships
func (r *UserRepository) TopCompanies(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	return r.company.TopCompaniesByInternships(ctx, limit)
}

// TopStudents ranks students by applications sent
func (r *UserRepository) TopStudents(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	return r.student.TopStudentsByApplications(ctx, limit)
}
