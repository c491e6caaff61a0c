package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new credentials.
const DefaultCost = 12

// Password hashes a plain password with bcrypt. The salt is generated by
// bcrypt itself and embedded in the returned hash.
func Password(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares a plain password against a stored bcrypt hash.
func Verify(plain, storedHash string) bool {
	if plain == "" || storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
