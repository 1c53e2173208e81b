// Package redis provides the Redis-backed UserStore.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// Key prefix for user records, indexed by username
const userPrefix = "user:name:"

// userRecord is the stored representation of a user
type userRecord struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore implements driven.UserStore using Redis. SETNX provides the
// per-username atomicity CreateIfAbsent requires: only one concurrent
// writer can claim a key, and the losers read the winner's record.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a new Redis-backed UserStore
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// CreateIfAbsent claims the username key or, if it is already held,
// returns the holder's ID without mutating the record
func (s *UserStore) CreateIfAbsent(ctx context.Context, user *domain.User) (string, error) {
	data, err := json.Marshal(userRecord{
		ID:           user.ID,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal user: %w", err)
	}

	claimed, err := s.client.SetNX(ctx, userPrefix+user.Username, data, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	if claimed {
		return user.ID, nil
	}

	// Somebody else owns the username; hand back their ID.
	rec, err := s.get(ctx, user.Username)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Retrieve looks up a user by exact username
func (s *UserStore) Retrieve(ctx context.Context, username string) (*domain.User, error) {
	rec, err := s.get(ctx, username)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:           rec.ID,
		Username:     username,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (s *UserStore) get(ctx context.Context, username string) (*userRecord, error) {
	data, err := s.client.Get(ctx, userPrefix+username).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &rec, nil
}
