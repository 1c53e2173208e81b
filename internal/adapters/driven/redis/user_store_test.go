package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// setupTestUserStore creates a test Redis client and UserStore
func setupTestUserStore(t *testing.T) (*UserStore, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewUserStore(client)

	return store, func() {
		client.Close()
		mr.Close()
	}
}

func testUser(id, username string) *domain.User {
	return &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateIfAbsent(t *testing.T) {
	store, cleanup := setupTestUserStore(t)
	defer cleanup()

	id, err := store.CreateIfAbsent(context.Background(), testUser("user-1", "sam"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "user-1" {
		t.Errorf("expected the proposed ID back, got %s", id)
	}
}

func TestCreateIfAbsent_ExistingUsername(t *testing.T) {
	store, cleanup := setupTestUserStore(t)
	defer cleanup()

	_, err := store.CreateIfAbsent(context.Background(), testUser("user-1", "sam"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := store.Retrieve(context.Background(), "sam")

	id, err := store.CreateIfAbsent(context.Background(), testUser("user-2", "sam"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "user-1" {
		t.Errorf("expected the existing owner's ID, got %s", id)
	}

	// No mutation on the losing create.
	second, err := store.Retrieve(context.Background(), "sam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID || second.PasswordHash != first.PasswordHash {
		t.Error("duplicate create mutated the stored record")
	}
}

func TestRetrieve(t *testing.T) {
	store, cleanup := setupTestUserStore(t)
	defer cleanup()

	want := testUser("user-1", "sam")
	_, err := store.CreateIfAbsent(context.Background(), want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Retrieve(context.Background(), "sam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("expected ID %s, got %s", want.ID, got.ID)
	}
	if got.Username != want.Username {
		t.Errorf("expected username %s, got %s", want.Username, got.Username)
	}
	if got.PasswordHash != want.PasswordHash {
		t.Errorf("expected password hash to round-trip, got %s", got.PasswordHash)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", want.CreatedAt, got.CreatedAt)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	store, cleanup := setupTestUserStore(t)
	defer cleanup()

	_, err := store.Retrieve(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRetrieve_CaseSensitive(t *testing.T) {
	store, cleanup := setupTestUserStore(t)
	defer cleanup()

	_, err := store.CreateIfAbsent(context.Background(), testUser("user-1", "Sam"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Retrieve(context.Background(), "sam"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("username comparison must be exact, got %v", err)
	}
}
