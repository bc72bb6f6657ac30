package ports

import (
	"context"

	"github.com/bitforge/playground-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
//
// Create must rely on store-level unique indexes for email and username:
// the signup flow performs a friendly pre-check, but the index is the
// authoritative race-safety mechanism and a constraint violation must be
// surfaced as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
