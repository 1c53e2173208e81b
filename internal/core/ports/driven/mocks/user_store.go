package mocks

import (
	"context"
	"sync"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu         sync.RWMutex
	byUsername map[string]*domain.User

	// CreateErr and RetrieveErr, when set, are returned by the
	// corresponding operation to simulate backend failures.
	CreateErr   error
	RetrieveErr error
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		byUsername: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) CreateIfAbsent(ctx context.Context, user *domain.User) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byUsername[user.Username]; ok {
		return existing.ID, nil
	}

	stored := *user
	m.byUsername[user.Username] = &stored
	return user.ID, nil
}

func (m *MockUserStore) Retrieve(ctx context.Context, username string) (*domain.User, error) {
	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	found := *user
	return &found, nil
}

// Stored returns the stored record for a username, for test assertions
func (m *MockUserStore) Stored(username string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byUsername[username]
}
