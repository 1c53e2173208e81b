package driven

import "github.com/keyfold/keyfold-core/internal/core/domain"

// TokenSigner mints and validates signed session tokens.
type TokenSigner interface {
	// Issue builds claims for the given user, signs them with the
	// configured secret, and returns the compact token string.
	Issue(userID string) (string, error)

	// Validate parses the token, checks the signature, issuer, and
	// expiry, and returns the claims. Any failure is returned as an
	// error; callers must not distinguish between failure causes when
	// reporting outward.
	Validate(token string) (*domain.TokenClaims, error)
}
