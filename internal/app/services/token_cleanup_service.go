package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ExpiredTokenStore is a token table that can drop rows past their use.
// Both the refresh and the password reset repositories implement it.
type ExpiredTokenStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenCleanupService periodically removes dead refresh tokens and reset links
type TokenCleanupService struct {
	stores map[string]ExpiredTokenStore
	now    func() time.Time
	logger zerolog.Logger
}

// NewTokenCleanupService creates a cleanup service over the named stores
func NewTokenCleanupService(stores map[string]ExpiredTokenStore, logger zerolog.Logger) *TokenCleanupService {
	return &TokenCleanupService{stores: stores, now: time.Now, logger: logger}
}

// Sweep runs one pass over every store. A failing store does not stop the
// others; their errors are joined.
func (s *TokenCleanupService) Sweep(ctx context.Context) (int64, error) {
	now := s.now()
	var total int64
	var errs []error
	for name, store := range s.stores {
		n, err := store.DeleteExpired(ctx, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		total += n
		if n > 0 {
			s.logger.Info().Str("table", name).Int64("deleted", n).Msg("Removed expired tokens")
		}
	}
	return total, errors.Join(errs...)
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *TokenCleanupService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("Token cleanup failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
