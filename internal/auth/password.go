package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the registration screen's check.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned when a registration password is below
// the minimum length.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

// HashPassword bcrypt-hashes a password for storage in the user profile.
// The mobile client used to store the raw password; the backend stores
// only the hash.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
