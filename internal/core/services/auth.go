package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
	"github.com/keyfold/keyfold-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService composes the hasher, token signer, and user store into the
// registration, login, and token verification protocols. It holds no
// mutable state of its own, so every method is safe to call concurrently;
// the store is the only shared resource, and hashing or signing never run
// while it is held.
type authService struct {
	store  driven.UserStore
	hasher driven.PasswordHasher
	signer driven.TokenSigner
}

// NewAuthService creates a new AuthService
func NewAuthService(
	store driven.UserStore,
	hasher driven.PasswordHasher,
	signer driven.TokenSigner,
) driving.AuthService {
	return &authService{
		store:  store,
		hasher: hasher,
		signer: signer,
	}
}

// Register creates a new account with a freshly generated user ID
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Hash before touching the store, so the expensive derivation never
	// serializes unrelated requests behind store access.
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing credential: %v", domain.ErrInternal, err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	storedID, err := s.store.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	// The store hands back a different ID when a pre-existing account
	// already owns the username.
	if storedID != user.ID {
		return nil, domain.ErrUsernameTaken
	}

	return &domain.RegisterResponse{UserID: storedID}, nil
}

// Login verifies credentials and issues a session token
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrLoginFailed
	}

	user, err := s.store.Retrieve(ctx, req.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Folded into the credential failure so callers cannot probe
		// which usernames exist.
		return nil, domain.ErrLoginFailed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		// Only the hasher produces stored hashes, so a hash it cannot
		// parse is an invariant violation rather than a bad password.
		return nil, fmt.Errorf("%w: verifying credential: %v", domain.ErrInternal, err)
	}
	if !ok {
		return nil, domain.ErrLoginFailed
	}

	token, err := s.signer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %v", domain.ErrInternal, err)
	}

	return &domain.LoginResponse{Token: token}, nil
}

// VerifyToken authenticates a raw Authorization header value
func (s *authService) VerifyToken(_ context.Context, authorization string) (string, error) {
	token, ok := stripBearerPrefix(authorization)
	if !ok {
		return "", fmt.Errorf("%w: malformed authorization header", domain.ErrTokenInvalid)
	}

	claims, err := s.signer.Validate(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	return claims.Subject, nil
}

// stripBearerPrefix removes a leading "bearer " scheme, matched
// case-insensitively ("Bearer ", "BEARER ", ...). Returns false when the
// header does not carry the scheme at all.
func stripBearerPrefix(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
