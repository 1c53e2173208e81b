package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore using PostgreSQL. The UNIQUE
// constraint on username makes CreateIfAbsent atomic per username without
// any application-level locking.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// CreateIfAbsent inserts the user or, on a username conflict, returns the
// existing owner's ID without mutating the row
func (s *UserStore) CreateIfAbsent(ctx context.Context, user *domain.User) (string, error) {
	insert := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`

	var id string
	err := s.db.QueryRowContext(ctx, insert,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("inserting user: %w", err)
	}

	// No row came back, so the username was already taken; read the
	// owner. A concurrent delete between the two statements would make
	// this fail, which surfaces as an ordinary store failure.
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = $1`, user.Username,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("resolving existing user: %w", err)
	}

	return id, nil
}

// Retrieve looks up a user by exact username
func (s *UserStore) Retrieve(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &user, nil
}
