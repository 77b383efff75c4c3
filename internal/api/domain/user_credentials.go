package domain

import "time"

// UserCredentials holds the password hash for a user, one-to-one. The hash is
// always a self-contained PHC string; the plaintext never reaches storage.
type UserCredentials struct {
	UserID       int64
	PasswordHash string
	UpdatedAt    time.Time
}

func (c UserCredentials) Validate() error {
	if c.UserID <= 0 {
		return &ValidationError{Field: "userId", Reason: "must be a positive integer"}
	}
	if len(c.PasswordHash) < 60 || len(c.PasswordHash) > 255 {
		return &ValidationError{Field: "passwordHash", Reason: "must be between 60 and 255 characters"}
	}
	if c.UpdatedAt.IsZero() {
		return &ValidationError{Field: "updatedAt", Reason: "is required"}
	}
	return nil
}
