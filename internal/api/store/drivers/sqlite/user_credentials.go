package sqlite

import (
	"context"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/store"
)

type userCredentialsRepo struct {
	db dbtx
}

func (r *userCredentialsRepo) CreateUserCredentials(
	ctx context.Context,
	userID int64,
	passwordHash string,
) (domain.UserCredentials, error) {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_credentials (user_id, password_hash, updated_at) VALUES (?, ?, ?)`,
		userID, passwordHash, now,
	)
	if err != nil {
		return domain.UserCredentials{}, mapConstraint(err)
	}

	c := domain.UserCredentials{UserID: userID, PasswordHash: passwordHash, UpdatedAt: now}
	if err := c.Validate(); err != nil {
		return domain.UserCredentials{}, err
	}
	return c, nil
}

func (r *userCredentialsRepo) GetUserCredentials(
	ctx context.Context,
	userID int64,
) (domain.UserCredentials, error) {
	var c domain.UserCredentials
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, password_hash, updated_at FROM user_credentials WHERE user_id = ?`,
		userID,
	).Scan(&c.UserID, &c.PasswordHash, &c.UpdatedAt)
	if err != nil {
		return domain.UserCredentials{}, mapNotFound(err)
	}

	if err := c.Validate(); err != nil {
		return domain.UserCredentials{}, store.ErrNotFound
	}
	return c, nil
}
