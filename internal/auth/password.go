package auth

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies credentials with bcrypt. Inputs are
// pre-hashed with SHA-256 so that passwords beyond bcrypt's 72-byte limit
// are accepted instead of erroring.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way hash. Two calls with the same input yield
// different outputs because bcrypt salts internally.
func (h *PasswordHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], h.cost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hashed. It never returns an
// error: malformed hashes simply verify as false.
func (h *PasswordHasher) Verify(password, hashed string) bool {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashed), sum[:]) == nil
}
