// Package validation holds input rules shared by the command line tools.
package validation

import (
	"errors"
	"regexp"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores anything past 72 bytes.
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrPasswordNoSpecial = errors.New("password must contain a special character")
	ErrPasswordNoDigit   = errors.New("password must contain a digit")

	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	digits       = regexp.MustCompile(`[0-9]`)
)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidatePassword applies the policy used for seeded accounts.
func ValidatePassword(pw string) error {
	switch {
	case len(pw) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(pw) > MaxPasswordLength:
		return ErrPasswordTooLong
	case !digits.MatchString(pw):
		return ErrPasswordNoDigit
	case !HasSpecialChar(pw):
		return ErrPasswordNoSpecial
	}
	return nil
}
