package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier hashes passwords and checks them against stored hashes.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier falls back to bcrypt.DefaultCost for out-of-range costs.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (v *BcryptVerifier) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}
