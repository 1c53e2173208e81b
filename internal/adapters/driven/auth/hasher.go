// Package auth implements the credential hashing and token signing ports
// using argon2id and HS256 JWTs.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// argon2id parameters per current OWASP guidance
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonSaltLen = 16
	argonKeyLen  = 32
)

// Verify interface compliance
var _ driven.PasswordHasher = (*Argon2idHasher)(nil)

// Argon2idHasher implements driven.PasswordHasher using argon2id with a
// PHC-encoded output: $argon2id$v=19$m=...,t=...,p=...$<salt>$<digest>.
// Each hash carries its own random salt; on top of that a configured pepper
// is mixed into every derivation, so rotating the pepper invalidates all
// stored hashes at once.
type Argon2idHasher struct {
	pepper []byte
}

// NewArgon2idHasher creates a hasher with the given pepper. An empty pepper
// is allowed but means stored hashes survive configuration changes.
func NewArgon2idHasher(pepper string) *Argon2idHasher {
	return &Argon2idHasher{pepper: []byte(pepper)}
}

// Hash derives a PHC-encoded argon2id hash of the password
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey(h.season(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the password with the parameters encoded in the stored
// hash and compares in constant time. A parse failure is returned as an
// error; a clean mismatch is (false, nil).
func (h *Argon2idHasher) Verify(password, encoded string) (bool, error) {
	params, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(h.season(password), salt, params.time, params.memory, params.threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// season appends the configured pepper to the password bytes
func (h *Argon2idHasher) season(password string) []byte {
	return append([]byte(password), h.pepper...)
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// decodeHash parses a PHC argon2id string into parameters, salt, and digest
func decodeHash(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return p, nil, nil, fmt.Errorf("malformed hash: %d segments", len(parts))
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("malformed version segment: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &threads); err != nil {
		return p, nil, nil, fmt.Errorf("malformed parameter segment: %w", err)
	}
	if threads == 0 || threads > 255 {
		return p, nil, nil, fmt.Errorf("parallelism %d out of range", threads)
	}
	p.threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("malformed salt: %w", err)
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("malformed digest: %w", err)
	}
	if len(digest) == 0 {
		return p, nil, nil, fmt.Errorf("empty digest")
	}

	return p, salt, digest, nil
}
