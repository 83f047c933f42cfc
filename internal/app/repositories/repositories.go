package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	InternshipRepository         *InternshipRepository
	ApplicationRepository        *ApplicationRepository
	SavedInternshipRepository    *SavedInternshipRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		InternshipRepository:         NewInternshipRepository(db),
		ApplicationRepository:        NewApplicationRepository(db),
		SavedInternshipRepository:    NewSavedInternshipRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
