package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/dberrors"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const emailConstraint = "users_email_key"

// Columns lists the users table columns in ScanDest order
var Columns = []string{
	"id", "name", "email", "password_hash", "role", "profile_image", "bio", "location", "phone",
	"is_verified", "created_at", "updated_at",
	"university", "major", "gpa", "skills", "interests", "cv_path",
	"company_name", "company_description", "company_website", "company_location", "company_logo", "industry",
}

// PrefixedColumns qualifies Columns with a table alias
func PrefixedColumns(alias string) []string {
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		cols[i] = alias + "." + c
	}
	return cols
}

// ScanDest returns scan targets for Columns
func ScanDest(u *models.User) []interface{} {
	return []interface{}{
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.ProfileImage, &u.Bio, &u.Location, &u.Phone,
		&u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
		&u.University, &u.Major, &u.GPA, &u.Skills, &u.Interests, &u.CVPath,
		&u.CompanyName, &u.CompanyDescription, &u.CompanyWebsite, &u.CompanyLocation, &u.CompanyLogo, &u.Industry,
	}
}

// Repository handles common user database operations
type Repository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a user of any role and returns its id
func (r *Repository) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u.Skills == nil {
		u.Skills = []string{}
	}
	now := time.Now()

	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password_hash", "role", "location", "phone", "is_verified",
			"university", "major", "skills",
			"company_name", "company_description", "company_website", "company_location", "industry",
			"created_at", "updated_at").
		Values(u.Name, strings.ToLower(u.Email), u.Password, u.Role, u.Location, u.Phone, u.IsVerified,
			u.University, u.Major, u.Skills,
			u.CompanyName, u.CompanyDescription, u.CompanyWebsite, u.CompanyLocation, u.Industry,
			now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailConstraint) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", u.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	u.CreatedAt, u.UpdatedAt = now, now
	return id, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(Columns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u := &models.User{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(ScanDest(u)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(email)})
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// EmailExists checks if an email already exists
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateUser writes the editable profile columns
func (r *Repository) UpdateUser(ctx context.Context, u *models.User) error {
	if u.Skills == nil {
		u.Skills = []string{}
	}
	u.UpdatedAt = time.Now()

	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"name":                u.Name,
			"bio":                 u.Bio,
			"location":            u.Location,
			"phone":               u.Phone,
			"university":          u.University,
			"major":               u.Major,
			"gpa":                 u.GPA,
			"skills":              u.Skills,
			"interests":           u.Interests,
			"company_name":        u.CompanyName,
			"company_description": u.CompanyDescription,
			"company_website":     u.CompanyWebsite,
			"company_location":    u.CompanyLocation,
			"industry":            u.Industry,
			"updated_at":          u.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	return r.execOne(ctx, sql, args, "update user")
}

// UpdatePassword stores a new password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password_hash", hash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}
	return r.execOne(ctx, sql, args, "update password")
}

// DeleteUser deletes a user; applications, saved entries and tokens cascade
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}
	return r.execOne(ctx, sql, args, "delete user")
}

// ListUsers returns users newest first, optionally of one role
func (r *Repository) ListUsers(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	q := r.sb.Select(Columns...).From("users").OrderBy("created_at DESC", "id DESC")
	if role != "" {
		q = q.Where(squirrel.Eq{"role": role})
	}
	return r.list(ctx, q)
}

// CountByRole returns the number of users per role
func (r *Repository) CountByRole(ctx context.Context) (map[models.RoleType]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RoleType]int64)
	for rows.Next() {
		var role models.RoleType
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("error scanning user count: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *Repository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(ScanDest(u)...); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) execOne(ctx context.Context, sql string, args []interface{}, op string) error {
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing user query")
		return fmt.Errorf("error executing %s: %w", op, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
