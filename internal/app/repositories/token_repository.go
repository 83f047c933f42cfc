package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRetention is how long revoked refresh tokens are kept before
// DeleteExpired removes them.
const RevokedTokenRetention = 30 * 24 * time.Hour

// ITokenRepository defines refresh token persistence
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	ConsumeToken(ctx context.Context, token string) (int64, error)
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenRepository stores refresh tokens. A token is single use: ConsumeToken
// revokes it in the same statement that reads it.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a freshly issued refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date").
		Values(token, userID, expiryDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create refresh token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error storing refresh token for user %d: %w", userID, err)
	}
	return nil
}

func (r *TokenRepository) consumeQuery(token string, now time.Time) squirrel.UpdateBuilder {
	return r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token, "is_revoked": false}).
		Where(squirrel.Gt{"expiry_date": now}).
		Suffix("RETURNING user_id")
}

// ConsumeToken revokes a live token and returns its owner. Two concurrent
// refreshes with the same token cannot both succeed.
func (r *TokenRepository) ConsumeToken(ctx context.Context, token string) (int64, error) {
	sql, args, err := r.consumeQuery(token, time.Now()).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build consume refresh token query: %w", err)
	}

	var userID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("error consuming refresh token: %w", err)
	}
	return 0, r.whyUnusable(ctx, token)
}

// whyUnusable tells a missing token apart from a revoked or expired one.
func (r *TokenRepository) whyUnusable(ctx context.Context, token string) error {
	sql, args, err := r.sb.Select("is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build refresh token lookup: %w", err)
	}

	var revoked bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("error looking up refresh token: %w", err)
	}
	if revoked {
		return apperrors.ErrTokenRevoked
	}
	return apperrors.ErrTokenExpired
}

// RevokeAllUserTokens signs a user out everywhere
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking tokens of user %d: %w", userID, err)
	}
	return nil
}

func (r *TokenRepository) expiredQuery(now time.Time) squirrel.DeleteBuilder {
	return r.sb.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expiry_date": now},
			squirrel.And{
				squirrel.Eq{"is_revoked": true},
				squirrel.Lt{"created_at": now.Add(-RevokedTokenRetention)},
			},
		})
}

// DeleteExpired removes tokens that expired before now and revoked tokens
// older than RevokedTokenRetention. It returns the number of rows removed.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.expiredQuery(now).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build refresh token cleanup query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
