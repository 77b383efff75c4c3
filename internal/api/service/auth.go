package service

import (
	"context"
	"errors"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/store"
	"github.com/lang-track/api/pkg/cryptox"
	"github.com/lang-track/api/pkg/jwtx"
	"github.com/lang-track/api/pkg/slogx"
)

var (
	// ErrDuplicateUser reports a registration against an email that is
	// already taken.
	ErrDuplicateUser = errors.New("duplicate_user")

	// ErrInvalidCredentials is returned for every login failure leg. The
	// caller must not be able to tell an unknown email from a wrong
	// password; the distinction is logged internally only.
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// AuthService orchestrates registration and login against the record store,
// the password module, and the token issuer.
type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string
}

// Register creates a user together with its credentials record.
//
// Both writes happen inside one transaction, so a credentials failure cannot
// leave an orphaned user row behind. The duplicate pre-check is a fast path;
// the unique index on users.email is the actual guarantee, and a lost race
// surfaces as ErrAlreadyExists from the store and is mapped to
// ErrDuplicateUser here.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := domain.ValidateRegistrationPassword(password); err != nil {
		return domain.User{}, err
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.User{}, ErrDuplicateUser
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	// Hash outside the transaction; argon2 is deliberately slow and must not
	// hold a write transaction open.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(ctx, email)
		if err != nil {
			return err
		}
		if _, err := tx.UserCredentials().CreateUserCredentials(ctx, u.ID, hash); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		log.Error("registration failed", "err", err)
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials for an email and issues a session token
// bound to the user id and email, valid for two hours from issuance.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := domain.ValidateLoginPassword(password); err != nil {
		return "", err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed: unknown email")
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	creds, err := s.Store.UserCredentials().GetUserCredentials(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login failed: user has no credentials", "user_id", user.ID)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !cryptox.VerifyPassword(creds.PasswordHash, password) {
		log.Info("login failed: password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	claims := jwtx.NewSessionClaims(user.ID, user.Email, s.Issuer, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", err
	}

	log.Info("user logged in", "user_id", user.ID)
	return token, nil
}
