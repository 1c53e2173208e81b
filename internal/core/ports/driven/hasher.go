package driven

// PasswordHasher derives and verifies salted password hashes.
// The domain does not care about the algorithm; the produced hash is a
// self-describing string carrying everything needed to re-verify.
type PasswordHasher interface {
	// Hash derives a hash from a plaintext password. The result encodes
	// the algorithm, its cost parameters, and the per-hash salt.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the stored hash.
	// A non-nil error means the stored hash itself could not be parsed,
	// which is an engine invariant violation, not a failed login.
	Verify(password, hash string) (bool, error)
}
