package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// Operator is the single deploy-time credential the gateway accepts.
type Operator struct {
	Username     string
	PasswordHash string
}

// Authenticate checks a login attempt against the stored credential.
func (o Operator) Authenticate(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(o.Username), []byte(username)) == 1
	return userMatch && CheckPassword(password, o.PasswordHash)
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
