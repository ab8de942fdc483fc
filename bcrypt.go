package loginfield

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash checks password against hash. A mismatch is
// reported as ErrMismatchedHashAndPassword, a malformed hash as is.
func ComparePasswordAndHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedHashAndPassword
	}
	return err
}

// RandomPasswordHash hashes a throw away secret, for accounts stored
// before their owner picked a password
func RandomPasswordHash() (string, error) {
	return HashPassword(uuid.NewString())
}
