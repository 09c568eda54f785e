package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit. Only that prefix of a longer
// password is significant.
const maxPasswordBytes = 72

func significant(password []byte) []byte {
	if len(password) > maxPasswordBytes {
		return password[:maxPasswordBytes]
	}
	return password
}

// HashPassword derives a salted bcrypt hash of password at the given cost.
// bcrypt draws a fresh random salt on every call, so hashing the same
// password twice yields different strings.
func HashPassword(password []byte, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword(significant(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash string, password []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), significant(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
