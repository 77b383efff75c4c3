package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lang-track/api/pkg/jwtx"
)

func newAuthedRequest(t *testing.T, signer jwtx.Signer, userID int64) *http.Request {
	t.Helper()

	raw, err := signer.Sign(jwtx.NewSessionClaims(userID, "user@example.com", "test", time.Now().UTC()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	return req
}

func TestAuthnMiddleware(t *testing.T) {
	h, err := jwtx.NewHS256([]byte("test-secret"))
	require.NoError(t, err)

	var gotUserID int64
	var sawUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, sawUser = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := Chain(inner, AuthnMiddleware(h))

	t.Run("valid token passes and injects user id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, newAuthedRequest(t, h, 42))

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, sawUser)
		require.Equal(t, int64(42), gotUserID)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.JSONEq(t, `{"success":false,"error":{"name":"Unauthorized"}}`, rec.Body.String())
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with other secret rejected", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("other-secret"))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, newAuthedRequest(t, other, 42))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
