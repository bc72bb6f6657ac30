package ports

import (
	"context"

	"github.com/bitforge/playground-api/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to AccountService.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AccountService implements the signup/login/identity flow.
type AccountService interface {
	// Signup registers a new account and returns a freshly issued identity
	// token alongside the created user.
	Signup(ctx context.Context, in SignupInput) (string, *domain.User, error)

	// Login authenticates by email or username (emails contain "@") and
	// returns an identity token alongside the matched user.
	Login(ctx context.Context, userID, password string) (string, *domain.User, error)

	// Logout records the sign-off. Tokens are stateless, so there is nothing
	// to revoke server-side; the transport layer clears the client cookie.
	Logout(ctx context.Context, userID, email string)

	// UserDetails returns the profile for a verified identity.
	UserDetails(ctx context.Context, userID string) (*domain.User, error)

	// MyCodes returns the identity's saved snippets, newest first.
	MyCodes(ctx context.Context, userID string) ([]domain.SavedCode, error)
}
