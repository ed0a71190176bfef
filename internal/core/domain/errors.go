package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrEntryNotFound = errors.New("entry not found")
var ErrForbidden = errors.New("access forbidden")

// ValidationError reports malformed input. Reason is safe to echo to callers.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// LockedError signals that an account is temporarily locked. Until is the
// moment the lockout expires; the HTTP layer renders the remaining time.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string { return "account temporarily locked" }

// Remaining returns how long the lockout still holds at the given instant,
// never negative.
func (e *LockedError) Remaining(now time.Time) time.Duration {
	d := e.Until.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
