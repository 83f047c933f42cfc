package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/repositories/user"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/dberrors"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationUniqueConstraint = "applications_student_id_internship_id_key"

var applicationColumns = []string{
	"a.id", "a.student_id", "a.internship_id", "a.status", "a.cover_letter", "a.match_score",
	"a.applied_at", "a.updated_at",
}

func applicationDest(a *models.Application) []interface{} {
	return []interface{}{
		&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.CoverLetter, &a.MatchScore,
		&a.AppliedAt, &a.UpdatedAt,
	}
}

// IApplicationRepository defines application persistence
type IApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
	AppliedInternshipIDs(ctx context.Context, studentID int64) (map[int64]bool, error)
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectFull joins the internship, its company and the student
func (r *ApplicationRepository) selectFull() squirrel.SelectBuilder {
	cols := append([]string{}, applicationColumns...)
	cols = append(cols, internshipColumns...)
	cols = append(cols, user.PrefixedColumns("s")...)
	return r.sb.Select(cols...).
		From("applications a").
		Join("internships i ON i.id = a.internship_id").
		Join("users c ON c.id = i.company_id").
		Join("users s ON s.id = a.student_id")
}

func fullDest(a *models.Application) []interface{} {
	a.Internship = &models.Internship{}
	a.Student = &models.User{}
	dest := applicationDest(a)
	dest = append(dest, internshipDest(a.Internship)...)
	return append(dest, user.ScanDest(a.Student)...)
}

// Create inserts an application and sets its ID
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	now := time.Now()
	if app.Status == "" {
		app.Status = models.StatusPending
	}

	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "internship_id", "status", "cover_letter", "match_score", "applied_at", "updated_at").
		Values(app.StudentID, app.InternshipID, app.Status, app.CoverLetter, app.MatchScore, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationUniqueConstraint) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInternshipNotFound
		}
		logger.Error().Err(err).Int64("studentID", app.StudentID).Int64("internshipID", app.InternshipID).
			Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	app.AppliedAt, app.UpdatedAt = now, now
	return nil
}

// GetByID retrieves an application with its internship and student
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.selectFull().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app := &models.Application{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(fullDest(app)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByStudent returns a student's applications, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.query(ctx, r.selectFull().Where(squirrel.Eq{"a.student_id": studentID}))
}

// ListByInternship returns the applications to one internship, best match first
func (r *ApplicationRepository) ListByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error) {
	return r.query(ctx, r.selectFull().
		Where(squirrel.Eq{"a.internship_id": internshipID}).
		OrderBy("a.match_score DESC NULLS LAST"))
}

// ListAll returns every application, newest first
func (r *ApplicationRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	return r.query(ctx, r.selectFull())
}

// UpdateStatus sets the status of an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("applications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// AppliedInternshipIDs returns the internships a student already applied to
func (r *ApplicationRepository) AppliedInternshipIDs(ctx context.Context, studentID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT internship_id FROM applications WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing applied internships: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning internship id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CountByStatus counts applications per status
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var status models.ApplicationStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning application count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ApplicationRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Application, error) {
	sql, args, err := q.OrderBy("a.applied_at DESC", "a.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app := &models.Application{}
		if err := rows.Scan(fullDest(app)...); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
