package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyRepository handles company-only columns
type CompanyRepository struct {
	common *Repository
	db     *pgxpool.Pool
	sb     squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool, common *Repository) *CompanyRepository {
	return &CompanyRepository{
		common: common,
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpdateLogo stores the logo path. A nil path clears it.
func (r *CompanyRepository) UpdateLogo(ctx context.Context, userID int64, logoPath *string) error {
	sql, args, err := r.sb.Update("users").
		Set("company_logo", logoPath).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID, "role": models.RoleCompany}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update logo query: %w", err)
	}
	return r.common.execOne(ctx, sql, args, "update logo")
}

// ListCompanies returns companies, optionally filtered by verification state
func (r *CompanyRepository) ListCompanies(ctx context.Context, verified *bool) ([]*models.User, error) {
	q := r.sb.Select(Columns...).
		From("users").
		Where(squirrel.Eq{"role": models.RoleCompany}).
		OrderBy("created_at DESC", "id DESC")
	if verified != nil {
		q = q.Where(squirrel.Eq{"is_verified": *verified})
	}
	return r.common.list(ctx, q)
}

// SetVerified approves or suspends a company
func (r *CompanyRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_verified", verified).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID, "role": models.RoleCompany}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build verify company query: %w", err)
	}
	return r.common.execOne(ctx, sql, args, "verify company")
}

// GetCompanyByName finds a company by its company name, ignoring case
func (r *CompanyRepository) GetCompanyByName(ctx context.Context, name string) (*models.User, error) {
	return r.common.getOne(ctx, squirrel.And{
		squirrel.Eq{"role": models.RoleCompany},
		squirrel.Expr("LOWER(company_name) = ?", strings.ToLower(strings.TrimSpace(name))),
	})
}

// TopCompaniesByInternships ranks companies by how many internships they posted
func (r *CompanyRepository) TopCompaniesByInternships(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	sql, args, err := r.sb.Select("u.id", "COALESCE(u.company_name, u.name)", "COUNT(i.id) AS total").
		From("users u").
		Join("internships i ON i.company_id = u.id").
		Where(squirrel.Eq{"u.role": models.RoleCompany}).
		GroupBy("u.id", "u.company_name", "u.name").
		OrderBy("total DESC", "u.id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top companies query: %w", err)
	}
	return queryRanked(ctx, r.db, sql, args)
}
