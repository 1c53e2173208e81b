package driven

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// UserStore handles user persistence. The engine is constructible against
// any conforming implementation (in-memory, PostgreSQL, Redis) and treats
// backend failures as opaque.
type UserStore interface {
	// CreateIfAbsent persists the user if no user with that username
	// exists yet and returns user.ID. If the username is already taken it
	// returns the existing owner's ID and performs no mutation.
	//
	// Implementations must make this atomic per username: two concurrent
	// calls for the same username must agree on a single winning ID.
	CreateIfAbsent(ctx context.Context, user *domain.User) (string, error)

	// Retrieve looks up a user by exact (case-sensitive) username.
	// A missing user is reported as domain.ErrUserNotFound, which is
	// distinguishable from backend failures.
	Retrieve(ctx context.Context, username string) (*domain.User, error)
}
