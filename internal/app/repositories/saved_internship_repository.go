package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ISavedInternshipRepository defines bookmark persistence
type ISavedInternshipRepository interface {
	Save(ctx context.Context, userID, internshipID int64) error
	Remove(ctx context.Context, userID, internshipID int64) error
	IsSaved(ctx context.Context, userID, internshipID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]*models.Internship, error)
}

// SavedInternshipRepository handles saved_internships operations
type SavedInternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSavedInternshipRepository creates a new SavedInternshipRepository
func NewSavedInternshipRepository(db *pgxpool.Pool) *SavedInternshipRepository {
	return &SavedInternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Save bookmarks an internship
func (r *SavedInternshipRepository) Save(ctx context.Context, userID, internshipID int64) error {
	sql, args, err := r.sb.Insert("saved_internships").
		Columns("user_id", "internship_id", "saved_at").
		Values(userID, internshipID, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save internship query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadySaved
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInternshipNotFound
		}
		return fmt.Errorf("error saving internship: %w", err)
	}
	return nil
}

// Remove deletes a bookmark
func (r *SavedInternshipRepository) Remove(ctx context.Context, userID, internshipID int64) error {
	sql, args, err := r.sb.Delete("saved_internships").
		Where(squirrel.Eq{"user_id": userID, "internship_id": internshipID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove saved internship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing saved internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSavedEntryNotFound
	}
	return nil
}

// IsSaved reports whether the user bookmarked the internship
func (r *SavedInternshipRepository) IsSaved(ctx context.Context, userID, internshipID int64) (bool, error) {
	var saved bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_internships WHERE user_id = $1 AND internship_id = $2)`,
		userID, internshipID).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("error checking saved internship: %w", err)
	}
	return saved, nil
}

// List returns the user's bookmarked internships, most recently saved first
func (r *SavedInternshipRepository) List(ctx context.Context, userID int64) ([]*models.Internship, error) {
	sql, args, err := r.sb.Select(internshipColumns...).
		From("saved_internships s").
		Join("internships i ON i.id = s.internship_id").
		Join("users c ON c.id = i.company_id").
		Where(squirrel.Eq{"s.user_id": userID}).
		OrderBy("s.saved_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list saved internships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing saved internships: %w", err)
	}
	defer rows.Close()

	internships := []*models.Internship{}
	for rows.Next() {
		in := &models.Internship{}
		if err := rows.Scan(internshipDest(in)...); err != nil {
			return nil, fmt.Errorf("error scanning saved internship row: %w", err)
		}
		internships = append(internships, in)
	}
	return internships, rows.Err()
}
