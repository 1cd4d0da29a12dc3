package helpers

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/users-api/internal/domain/security"
)

var (
	// ErrHashFailure wraps bcrypt failures while producing a hash.
	ErrHashFailure = errors.New("password hash failed")
	// ErrMalformedHash is returned when a stored hash cannot be compared.
	ErrMalformedHash = errors.New("malformed password hash")
)

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash hashes the plain text password; every call uses a fresh salt.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) > security.MaxPasswordBytes {
		return "", security.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", security.ErrPasswordTooLong, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailure, err)
	}
	return string(b), nil
}

// Verify compares a plain password with a bcrypt hash in constant time.
func (h *BcryptHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
