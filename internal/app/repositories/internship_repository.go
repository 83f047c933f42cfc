package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/dberrors"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// internshipColumns lists internship columns plus the joined company, in internshipDest order
var internshipColumns = []string{
	"i.id", "i.company_id", "i.title", "i.description", "i.requirements", "i.location",
	"i.duration", "i.stipend", "i.type", "i.required_skills", "i.required_major",
	"i.is_active", "i.deadline", "i.created_at", "i.updated_at",
	"COALESCE(c.company_name, c.name, '')", "COALESCE(c.company_logo, '')", "COALESCE(c.company_location, '')",
}

func internshipDest(in *models.Internship) []interface{} {
	return []interface{}{
		&in.ID, &in.CompanyID, &in.Title, &in.Description, &in.Requirements, &in.Location,
		&in.Duration, &in.Stipend, &in.Type, &in.RequiredSkills, &in.RequiredMajor,
		&in.IsActive, &in.Deadline, &in.CreatedAt, &in.UpdatedAt,
		&in.CompanyName, &in.CompanyLogo, &in.CompanyLocation,
	}
}

// IInternshipRepository defines internship persistence
type IInternshipRepository interface {
	Create(ctx context.Context, in *models.Internship) error
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	Update(ctx context.Context, in *models.Internship) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.InternshipFilter, offset, limit uint64) ([]*models.Internship, int64, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error)
	ExistsByTitle(ctx context.Context, companyID int64, title string) (bool, error)
	Count(ctx context.Context) (total int64, active int64, err error)
}

// InternshipRepository handles internship database operations
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *InternshipRepository) selectInternships() squirrel.SelectBuilder {
	return r.sb.Select(internshipColumns...).
		From("internships i").
		Join("users c ON c.id = i.company_id")
}

// Create inserts an internship and sets its ID
func (r *InternshipRepository) Create(ctx context.Context, in *models.Internship) error {
	if in.RequiredSkills == nil {
		in.RequiredSkills = []string{}
	}
	now := time.Now()

	sql, args, err := r.sb.Insert("internships").
		Columns("company_id", "title", "description", "requirements", "location", "duration",
			"stipend", "type", "required_skills", "required_major", "is_active", "deadline",
			"created_at", "updated_at").
		Values(in.CompanyID, in.Title, in.Description, in.Requirements, in.Location, in.Duration,
			in.Stipend, in.Type, in.RequiredSkills, in.RequiredMajor, in.IsActive, in.Deadline,
			now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create internship query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&in.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("companyID", in.CompanyID).Msg("Error executing create internship query")
		return fmt.Errorf("error creating internship: %w", err)
	}
	in.CreatedAt, in.UpdatedAt = now, now
	return nil
}

// GetByID retrieves an internship with its company
func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	sql, args, err := r.selectInternships().Where(squirrel.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get internship query: %w", err)
	}

	in := &models.Internship{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(internshipDest(in)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("error retrieving internship: %w", err)
	}
	return in, nil
}

// Update writes every editable column
func (r *InternshipRepository) Update(ctx context.Context, in *models.Internship) error {
	if in.RequiredSkills == nil {
		in.RequiredSkills = []string{}
	}
	in.UpdatedAt = time.Now()

	sql, args, err := r.sb.Update("internships").
		SetMap(map[string]interface{}{
			"title":           in.Title,
			"description":     in.Description,
			"requirements":    in.Requirements,
			"location":        in.Location,
			"duration":        in.Duration,
			"stipend":         in.Stipend,
			"type":            in.Type,
			"required_skills": in.RequiredSkills,
			"required_major":  in.RequiredMajor,
			"is_active":       in.IsActive,
			"deadline":        in.Deadline,
			"updated_at":      in.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": in.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update internship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// Delete removes an internship; its applications and saved entries cascade
func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("internships").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete internship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

func applyInternshipFilter(q squirrel.SelectBuilder, f models.InternshipFilter) squirrel.SelectBuilder {
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"i.is_active": true})
	}
	if f.CompanyID > 0 {
		q = q.Where(squirrel.Eq{"i.company_id": f.CompanyID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"i.title": pattern},
			squirrel.ILike{"i.description": pattern},
			squirrel.ILike{"c.company_name": pattern},
		})
	}
	if f.Location != "" {
		q = q.Where(squirrel.ILike{"i.location": "%" + f.Location + "%"})
	}
	if f.Type != "" {
		q = q.Where(squirrel.ILike{"i.type": f.Type})
	}
	return q
}

// List returns one page of internships matching filter plus the total count.
// A zero limit returns every match.
func (r *InternshipRepository) List(ctx context.Context, filter models.InternshipFilter, offset, limit uint64) ([]*models.Internship, int64, error) {
	countSQL, countArgs, err := applyInternshipFilter(
		r.sb.Select("COUNT(*)").From("internships i").Join("users c ON c.id = i.company_id"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count internships query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting internships: %w", err)
	}

	q := applyInternshipFilter(r.selectInternships(), filter).OrderBy("i.created_at DESC", "i.id DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	internships, err := r.query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return internships, total, nil
}

// ListByCompany returns every internship a company posted, active or not
func (r *InternshipRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error) {
	return r.query(ctx, r.selectInternships().
		Where(squirrel.Eq{"i.company_id": companyID}).
		OrderBy("i.created_at DESC", "i.id DESC"))
}

// ExistsByTitle reports whether the company already posted an internship with this title
func (r *InternshipRepository) ExistsByTitle(ctx context.Context, companyID int64, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM internships WHERE company_id = $1 AND LOWER(title) = LOWER($2))`,
		companyID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking internship title: %w", err)
	}
	return exists, nil
}

// Count returns the total and active internship counts
func (r *InternshipRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM internships`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting internships: %w", err)
	}
	return total, active, nil
}

func (r *InternshipRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Internship, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list internships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	internships := []*models.Internship{}
	for rows.Next() {
		in := &models.Internship{}
		if err := rows.Scan(internshipDest(in)...); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}
	return internships, rows.Err()
}
