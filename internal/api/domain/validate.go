package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidationError reports which field of an entity or request violated its
// constraint. Validators return it as a typed failure value; they never panic
// on well-formed input of the wrong shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Uniqueness of emails is case-insensitive, so every email entering the
// system passes through here first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address syntax. The parse must consume the whole
// string as a bare address; display names ("A <a@b.co>") are rejected.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "invalid email address format"}
	}
	return nil
}

const (
	passwordMinLen = 8
	passwordMaxLen = 100
)

// ValidateRegistrationPassword enforces the composition policy for new
// passwords: 8-100 characters with at least one digit and one uppercase
// letter.
func ValidateRegistrationPassword(password string) error {
	if err := ValidateLoginPassword(password); err != nil {
		return err
	}
	if !strings.ContainsAny(password, "0123456789") {
		return &ValidationError{Field: "password", Reason: "must contain at least one number"}
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return &ValidationError{Field: "password", Reason: "must contain at least one uppercase letter"}
	}
	return nil
}

// ValidateLoginPassword enforces only the length bounds. Composition rules
// are not re-checked at login so that accounts created under older policies
// can still sign in.
func ValidateLoginPassword(password string) error {
	if len(password) < passwordMinLen {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters long"}
	}
	if len(password) > passwordMaxLen {
		return &ValidationError{Field: "password", Reason: "cannot exceed 100 characters"}
	}
	return nil
}
