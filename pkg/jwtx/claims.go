package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lang-track/api/pkg/idx"
)

// SessionTTL is the fixed lifetime of a session token: two hours from
// issuance. There is no refresh flow; an expired token means a fresh login.
const SessionTTL = 2 * time.Hour

// Claims are the session-token claims. The binding contract is
// {sub, email, exp}; the remaining registered claims are additive and kept
// for debuggability.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims for a user.
// The subject is the user's integer id rendered as a decimal string.
func NewSessionClaims(userID int64, email, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			ID:        idx.New().String(),
		},
		Email: email,
	}
}

// UserID parses the subject claim back into the user's integer id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
