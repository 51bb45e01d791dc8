package security

import (
	"github.com/mserban/atelier/internal/application/ports"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new password hashes.
const DefaultCost = 12

// BcryptHasher implements ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares in constant time via bcrypt.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
