// Package auth provides credential hashing and the signed session token
// service that gates every task and category operation.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the interface for turning a plaintext password into
// a verifier safe to persist.
type PasswordHasher interface {
	// Hash returns the one-way hashed form of password. The output is salted,
	// so two calls with the same input produce different verifiers; Compare
	// succeeds against any of them.
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on failure (e.g.,
	// mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptPasswordService implements PasswordHasher and PasswordVerifier using
// bcrypt. The plaintext never leaves this package and is never logged.
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a BcryptPasswordService with the default
// bcrypt cost.
func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

var (
	_ PasswordHasher   = (*BcryptPasswordService)(nil)
	_ PasswordVerifier = (*BcryptPasswordService)(nil)
)

// Hash implements the PasswordHasher interface using bcrypt.
func (s *BcryptPasswordService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(hashed), nil
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (s *BcryptPasswordService) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
