package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 6

// HashPassword hashes a plaintext password with bcrypt. bcrypt is a slow,
// salted, adaptive algorithm; every call produces a different hash for the
// same input. A hashing failure is fatal to registration and surfaces as a
// 500-class error at the handler.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// The comparison is constant-time inside bcrypt. Any failure, including a
// malformed stored hash, is treated as "no match", never as a crash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
