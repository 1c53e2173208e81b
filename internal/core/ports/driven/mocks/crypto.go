package mocks

import (
	"errors"
	"strings"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// MockPasswordHasher is a mock implementation of PasswordHasher for testing.
// It "hashes" by prefixing the plaintext, which keeps test fixtures readable.
type MockPasswordHasher struct{}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	plain, ok := strings.CutPrefix(hash, "hashed:")
	if !ok {
		return false, errors.New("unparseable hash")
	}
	return plain == password, nil
}

// MockTokenSigner is a mock implementation of TokenSigner for testing.
// Tokens are the user ID behind a fixed prefix.
type MockTokenSigner struct {
	// IssueErr, when set, is returned by Issue
	IssueErr error
}

// NewMockTokenSigner creates a new MockTokenSigner
func NewMockTokenSigner() *MockTokenSigner {
	return &MockTokenSigner{}
}

func (m *MockTokenSigner) Issue(userID string) (string, error) {
	if m.IssueErr != nil {
		return "", m.IssueErr
	}
	return "token:" + userID, nil
}

func (m *MockTokenSigner) Validate(token string) (*domain.TokenClaims, error) {
	userID, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, errors.New("bad token")
	}
	return &domain.TokenClaims{Subject: userID}, nil
}
