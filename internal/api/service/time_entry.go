package service

import (
	"context"
	"errors"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/store"
)

// ErrTimeEntryNotFound covers both a missing entry and an entry owned by
// another user; callers cannot probe other users' ids.
var ErrTimeEntryNotFound = errors.New("time_entry_not_found")

// TimeEntryService creates and reads time entries. The owner id always comes
// from the verified session token, never from the request body.
type TimeEntryService struct {
	Store store.Store
}

// CreateTimeEntryInput carries the caller-supplied fields of a new entry.
type CreateTimeEntryInput struct {
	StartTime   time.Time
	EndTime     *time.Time
	Description *string
}

// Create validates the input shape and inserts a new entry for the user.
func (s *TimeEntryService) Create(
	ctx context.Context,
	userID int64,
	in CreateTimeEntryInput,
) (domain.TimeEntry, error) {
	if userID <= 0 {
		return domain.TimeEntry{}, &domain.ValidationError{Field: "userId", Reason: "must be a positive integer"}
	}
	if in.StartTime.IsZero() {
		return domain.TimeEntry{}, &domain.ValidationError{Field: "startTime", Reason: "is required"}
	}
	if in.EndTime != nil && in.EndTime.Before(in.StartTime) {
		return domain.TimeEntry{}, &domain.ValidationError{Field: "endTime", Reason: "must not be before startTime"}
	}

	return s.Store.TimeEntries().CreateTimeEntry(ctx, store.TimeEntryInput{
		UserID:      userID,
		StartTime:   in.StartTime.UTC(),
		EndTime:     normalizeTimePtr(in.EndTime),
		Description: in.Description,
	})
}

// ListForUser returns the user's entries, newest start time first.
func (s *TimeEntryService) ListForUser(ctx context.Context, userID int64) ([]domain.TimeEntry, error) {
	return s.Store.TimeEntries().ListTimeEntriesForUser(ctx, userID)
}

// GetByID returns a single entry if it exists and belongs to the user.
func (s *TimeEntryService) GetByID(ctx context.Context, userID, id int64) (domain.TimeEntry, error) {
	entry, err := s.Store.TimeEntries().GetTimeEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TimeEntry{}, ErrTimeEntryNotFound
		}
		return domain.TimeEntry{}, err
	}
	if entry.UserID != userID {
		return domain.TimeEntry{}, ErrTimeEntryNotFound
	}
	return entry, nil
}

func normalizeTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
