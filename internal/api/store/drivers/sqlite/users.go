package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/store"
)

type usersRepo struct {
	db dbtx
}

const selectUser = `SELECT id, email, created_at, updated_at FROM users WHERE `

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUser+`email = ?`, email))
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUser+`id = ?`, id))
}

func (r *usersRepo) CreateUser(ctx context.Context, email string) (domain.User, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, created_at, updated_at) VALUES (?, ?, ?) RETURNING id`,
		email, now, now,
	).Scan(&id)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	u := domain.User{ID: id, Email: email, CreatedAt: now, UpdatedAt: &now}
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// scanUser maps a row into the domain entity and re-validates it. Rows that
// fail validation are reported as not found.
func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		updatedAt sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt, &updatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.UpdatedAt = mapNullTimePtr(updatedAt)

	if err := u.Validate(); err != nil {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}
