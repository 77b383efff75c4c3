package store

import (
	"context"
	"errors"
	"time"

	"github.com/lang-track/api/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
//
// Reads have a three-way outcome: a value, ErrNotFound, or a store error.
// Drivers re-validate every record they read through the domain validators;
// a row that fails validation is reported as ErrNotFound so corrupt data
// fails closed instead of leaking.
type Store interface {
	Users() Users
	UserCredentials() UserCredentials
	TimeEntries() TimeEntries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// Use it for multi-step operations that must be atomic (e.g. creating a
	// user together with its credentials).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByEmail looks a user up by its unique (already normalized) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// CreateUser inserts a new user and returns it with the assigned id.
	// A duplicate email surfaces as ErrAlreadyExists via the unique index;
	// callers may pre-check but must not rely on the pre-check for
	// correctness.
	CreateUser(ctx context.Context, email string) (domain.User, error)
}

type UserCredentials interface {
	// CreateUserCredentials inserts the credentials record for a user.
	// Exactly one record exists per user id; a second insert surfaces as
	// ErrAlreadyExists.
	CreateUserCredentials(ctx context.Context, userID int64, passwordHash string) (domain.UserCredentials, error)

	// GetUserCredentials returns the credentials for a user id.
	GetUserCredentials(ctx context.Context, userID int64) (domain.UserCredentials, error)
}

// TimeEntryInput carries the caller-supplied fields of a new time entry.
// The store assigns id and timestamps.
type TimeEntryInput struct {
	UserID      int64
	StartTime   time.Time
	EndTime     *time.Time
	Description *string
}

type TimeEntries interface {
	// CreateTimeEntry inserts a new entry and returns it with the assigned id.
	CreateTimeEntry(ctx context.Context, in TimeEntryInput) (domain.TimeEntry, error)

	// GetTimeEntryByID returns a single entry by id.
	GetTimeEntryByID(ctx context.Context, id int64) (domain.TimeEntry, error)

	// ListTimeEntriesForUser returns all entries owned by a user, newest
	// start time first.
	ListTimeEntriesForUser(ctx context.Context, userID int64) ([]domain.TimeEntry, error)
}
