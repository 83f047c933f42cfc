package user

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRepository handles student-only columns
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpdateCV stores the CV path and the merged skill list. A nil path clears the CV.
func (r *StudentRepository) UpdateCV(ctx context.Context, userID int64, cvPath *string, skills []string) error {
	if skills == nil {
		skills = []string{}
	}

	sql, args, err := r.sb.Update("users").
		Set("cv_path", cvPath).
		Set("skills", skills).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID, "role": models.RoleStudent}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update cv query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating cv: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// TopStudentsByApplications ranks students by how many applications they sent
func (r *StudentRepository) TopStudentsByApplications(ctx context.Context, limit uint64) ([]models.RankedEntry, error) {
	sql, args, err := r.sb.Select("u.id", "u.name", "COUNT(a.id) AS total").
		From("users u").
		Join("applications a ON a.student_id = u.id").
		Where(squirrel.Eq{"u.role": models.RoleStudent}).
		GroupBy("u.id", "u.name").
		OrderBy("total DESC", "u.id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top students query: %w", err)
	}
	return queryRanked(ctx, r.db, sql, args)
}

func queryRanked(ctx context.Context, db *pgxpool.Pool, sql string, args []interface{}) ([]models.RankedEntry, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error ranking users: %w", err)
	}
	defer rows.Close()

	entries := []models.RankedEntry{}
	for rows.Next() {
		var e models.RankedEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Count); err != nil {
			return nil, fmt.Errorf("error scanning ranked row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
