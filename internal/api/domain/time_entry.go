package domain

import "time"

// TimeEntry records a tracked span of time owned by a user. EndTime is nil
// while the entry is still running.
type TimeEntry struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e TimeEntry) Validate() error {
	if e.ID <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	if e.UserID <= 0 {
		return &ValidationError{Field: "userId", Reason: "must be a positive integer"}
	}
	if e.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Reason: "is required"}
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return &ValidationError{Field: "endTime", Reason: "must not be before startTime"}
	}
	if e.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "is required"}
	}
	if e.UpdatedAt.IsZero() {
		return &ValidationError{Field: "updatedAt", Reason: "is required"}
	}
	return nil
}
