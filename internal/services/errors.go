package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operation boundaries. Handlers map these onto HTTP
// responses; anything not listed here is treated as an internal fault and
// surfaced generically.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrAccountBlocked     = errors.New("account blocked, contact admin")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("password reset link expired")
	ErrGenerationFormat   = errors.New("generator returned an invalid quiz")
	ErrDeliveryFailed     = errors.New("failed to deliver notification")
	ErrPersistence        = errors.New("persistence operation failed")
)

// CredentialError is returned for a wrong password while attempts remain.
// It matches ErrInvalidCredentials under errors.Is.
type CredentialError struct {
	RemainingAttempts int
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("wrong password, %d attempt(s) remaining", e.RemainingAttempts)
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrInvalidCredentials
}
