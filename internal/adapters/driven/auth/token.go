package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TokenSigner = (*JWTSigner)(nil)

// JWTSigner implements driven.TokenSigner using HS256-signed JWTs.
// The secret is symmetric and known only to the engine instance; rotating
// it invalidates every outstanding token.
type JWTSigner struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTSigner creates a signer reading the wall clock
func NewJWTSigner(secret, issuer string, lifetime time.Duration) *JWTSigner {
	return NewJWTSignerWithClock(secret, issuer, lifetime, time.Now)
}

// NewJWTSignerWithClock creates a signer with an injected clock,
// for deterministic expiry testing
func NewJWTSignerWithClock(secret, issuer string, lifetime time.Duration, now func() time.Time) *JWTSigner {
	return &JWTSigner{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
		now:      now,
	}
}

// Issue signs a token with subject = userID, the configured issuer, and an
// expiry of now plus the configured lifetime
func (s *JWTSigner) Issue(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(s.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a compact token. Signature, issuer, and
// expiry are all enforced; the caller sees a single undifferentiated error
// for every failure class.
func (s *JWTSigner) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &domain.TokenClaims{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}
