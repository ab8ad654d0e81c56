package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultHashCost = 10

const (
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
	passwordSymbols   = "@$!%*?&"
)

// ValidateStrength reports whether password is between MinPasswordLength and
// MaxPasswordLength long, mixes an ASCII letter, a digit and one of @$!%*?&, and
// uses no other characters. Every password it accepts can be hashed.
func ValidateStrength(password string) bool {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case isPasswordSymbol(r):
			hasSymbol = true
		default:
			return false
		}
	}

	return hasLetter && hasDigit && hasSymbol
}

func isPasswordSymbol(r rune) bool {
	for _, s := range passwordSymbols {
		if r == s {
			return true
		}
	}
	return false
}

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}
