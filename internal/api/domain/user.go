package domain

import "time"

// User is the root entity. Credentials and time entries reference it by id
// but are stored as independent records. Users are immutable after
// registration; there is no update path.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Validate checks the stored-entity invariants. The store gateway runs this
// over every record it reads back; a row that fails is treated as not found.
func (u User) Validate() error {
	if u.ID <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "is required"}
	}
	return nil
}
