// Package memory provides an in-memory UserStore for examples and tests.
package memory

import (
	"context"
	"sync"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore with a mutex-guarded map.
// A single lock serializes all access, which trivially satisfies the
// per-username atomicity CreateIfAbsent requires.
type UserStore struct {
	mu         sync.RWMutex
	byUsername map[string]*domain.User
}

// NewUserStore creates an empty in-memory UserStore
func NewUserStore() *UserStore {
	return &UserStore{
		byUsername: make(map[string]*domain.User),
	}
}

// CreateIfAbsent persists the user unless the username is already taken,
// in which case the existing owner's ID is returned unchanged
func (s *UserStore) CreateIfAbsent(ctx context.Context, user *domain.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byUsername[user.Username]; ok {
		return existing.ID, nil
	}

	stored := *user
	s.byUsername[user.Username] = &stored
	return user.ID, nil
}

// Retrieve looks up a user by exact username
func (s *UserStore) Retrieve(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	found := *user
	return &found, nil
}
