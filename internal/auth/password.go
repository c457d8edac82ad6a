package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// HashPassword hashes a plaintext password with a fresh random salt.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies plaintext against a stored bcrypt hash in constant
// time. A malformed hash yields false, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsBcryptHash reports whether s carries the bcrypt version prefix ($2a$,
// $2b$, ...). Pre-migration rows hold plaintext and lack it.
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2")
}
