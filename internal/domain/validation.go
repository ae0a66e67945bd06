package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	maxNameLength     = 100
)

// ValidatePassword enforces the portal signup password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be <= %d characters", ErrInvalidInput, maxPasswordLength)
	}
	return nil
}

// ValidateName checks a first or last name field.
func ValidateName(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len(trimmed) > maxNameLength {
		return fmt.Errorf("%w: %s must be <= %d characters", ErrInvalidInput, field, maxNameLength)
	}
	return nil
}

// NormalizeEmail lowercases, trims and syntactically validates an email.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return trimmed, nil
}
