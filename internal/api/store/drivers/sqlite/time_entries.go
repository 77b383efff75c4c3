package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/store"
)

type timeEntriesRepo struct {
	db dbtx
}

const selectTimeEntry = `SELECT id, user_id, start_time, end_time, description, created_at, updated_at FROM time_entries`

func (r *timeEntriesRepo) CreateTimeEntry(
	ctx context.Context,
	in store.TimeEntryInput,
) (domain.TimeEntry, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO time_entries (user_id, start_time, end_time, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		in.UserID, in.StartTime, mapOptionalTime(in.EndTime), mapOptionalString(in.Description), now, now,
	).Scan(&id)
	if err != nil {
		return domain.TimeEntry{}, mapConstraint(err)
	}

	e := domain.TimeEntry{
		ID:          id,
		UserID:      in.UserID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return domain.TimeEntry{}, err
	}
	return e, nil
}

func (r *timeEntriesRepo) GetTimeEntryByID(ctx context.Context, id int64) (domain.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx, selectTimeEntry+` WHERE id = ?`, id)

	e, err := scanTimeEntry(row.Scan)
	if err != nil {
		return domain.TimeEntry{}, mapNotFound(err)
	}
	if err := e.Validate(); err != nil {
		return domain.TimeEntry{}, store.ErrNotFound
	}
	return e, nil
}

func (r *timeEntriesRepo) ListTimeEntriesForUser(
	ctx context.Context,
	userID int64,
) ([]domain.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		selectTimeEntry+` WHERE user_id = ? ORDER BY start_time DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		e, err := scanTimeEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		// A corrupt row fails closed: it is skipped rather than surfaced.
		if err := e.Validate(); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTimeEntry(scan func(dest ...any) error) (domain.TimeEntry, error) {
	var (
		e           domain.TimeEntry
		endTime     sql.NullTime
		description sql.NullString
	)
	err := scan(&e.ID, &e.UserID, &e.StartTime, &endTime, &description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	e.EndTime = mapNullTimePtr(endTime)
	e.Description = mapNullStringPtr(description)
	return e, nil
}
