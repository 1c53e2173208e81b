package domain

import "errors"

// Domain errors - used across all layers. Everything the engine returns is
// one of these kinds; internal causes are wrapped onto them so that detail
// survives for logging while callers match with errors.Is and report only
// the coarse kind.
var (
	// ErrUsernameTaken indicates a registration collided with an existing account
	ErrUsernameTaken = errors.New("username already taken")

	// ErrLoginFailed indicates wrong credentials or an unknown username.
	// The two cases are deliberately indistinguishable to prevent
	// username enumeration.
	ErrLoginFailed = errors.New("login failed")

	// ErrTokenInvalid covers a missing, malformed, tampered, mis-issued,
	// or expired token. One kind for all of them, so callers get no
	// oracle for which check failed.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrUserNotFound indicates the store has no user with that username
	ErrUserNotFound = errors.New("user not found")

	// ErrStoreFailure indicates the user store failed for a backend-specific
	// reason. Never retried at this layer.
	ErrStoreFailure = errors.New("store failure")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an invariant violation inside the engine,
	// such as a stored hash the hasher cannot parse
	ErrInternal = errors.New("internal error")
)
