package driving

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// AuthService handles user registration, login, and request authentication
type AuthService interface {
	// Register creates a new account and returns its user ID.
	// Fails with domain.ErrUsernameTaken if the username is owned
	// by an existing account.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)

	// Login verifies credentials and returns a signed session token.
	// Unknown usernames and wrong passwords both fail with
	// domain.ErrLoginFailed.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// VerifyToken authenticates a raw Authorization header value and
	// returns the user ID the token was issued for. The "bearer " prefix
	// is matched case-insensitively; a missing prefix or any token
	// validation failure fails with domain.ErrTokenInvalid.
	VerifyToken(ctx context.Context, authorization string) (string, error)
}
