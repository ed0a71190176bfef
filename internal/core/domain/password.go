package domain

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// passwordSpecialChars is the accepted special-character set.
const passwordSpecialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

// ValidatePassword checks a candidate password against the strength rules and
// returns a ValidationError naming the first violated rule. Rules are checked
// in a fixed order — length, uppercase, lowercase, digit, special character —
// so error messages are deterministic.
func ValidatePassword(candidate string) error {
	if len(candidate) < MinPasswordLength {
		return NewValidationError("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return NewValidationError("password must contain an uppercase letter")
	case !hasLower:
		return NewValidationError("password must contain a lowercase letter")
	case !hasDigit:
		return NewValidationError("password must contain a digit")
	case !hasSpecial:
		return NewValidationError("password must contain a special character")
	}
	return nil
}
