package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lang-track/api/internal/api/service"
	"github.com/lang-track/api/internal/api/store/drivers/sqlite"
	"github.com/lang-track/api/pkg/jwtx"
)

func newTestRouter(t *testing.T, allowRegistration string) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("router-test-secret"))
	require.NoError(t, err)

	r := NewRouter(signer, allowRegistration, "test", st, slog.New(slog.DiscardHandler))
	r.AuthService = &service.AuthService{Store: st, Signer: signer, Issuer: "lang-track"}
	r.TimeEntryService = &service.TimeEntryService{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerBody(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestRegistrationGate(t *testing.T) {
	for _, flag := range []string{"", "false", "TRUE", "yes", " true"} {
		t.Run("flag "+flag, func(t *testing.T) {
			r := newTestRouter(t, flag)

			rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
				registerBody("gated@example.com", "Abcdefg1"))
			require.Equal(t, http.StatusForbidden, rec.Code)

			body := decodeBody(t, rec)
			require.Equal(t, false, body["success"])
			require.Equal(t, "Forbidden", body["error"].(map[string]any)["name"])
		})
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t, "true")

	t.Run("creates a user and normalizes the email", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
			registerBody("  New.User@Example.com ", "Abcdefg1"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, true, body["success"])

		user := body["user"].(map[string]any)
		require.Equal(t, "new.user@example.com", user["email"])
		require.Positive(t, user["id"].(float64))
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email reads as a plain bad request", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
			registerBody("new.user@example.com", "Abcdefg1"))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Bad Request", body["error"].(map[string]any)["name"])
	})

	t.Run("weak password rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
			registerBody("weak@example.com", "short1A"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestRouter(t, "true")

	rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
		registerBody("login@example.com", "Abcdefg1"))
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("issues a token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/login", "",
			registerBody("Login@Example.COM", "Abcdefg1"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, true, body["success"])
		require.NotEmpty(t, body["token"])
	})

	t.Run("wrong password and unknown email answer identically", func(t *testing.T) {
		wrongPass := doJSON(t, r, http.MethodPost, "/auth/login", "",
			registerBody("login@example.com", "Wrongpass1"))
		unknown := doJSON(t, r, http.MethodPost, "/auth/login", "",
			registerBody("nobody@example.com", "Abcdefg1"))

		require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		require.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
	})

	t.Run("short password is a bad request", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/login", "",
			registerBody("login@example.com", "short"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func loginToken(t *testing.T, r *Router, email, password string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/auth/login", "", registerBody(email, password))
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}

func TestTimeEntryEndpoints(t *testing.T) {
	r := newTestRouter(t, "true")

	rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
		registerBody("owner@example.com", "Abcdefg1"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodPost, "/auth/register", "",
		registerBody("other@example.com", "Abcdefg1"))
	require.Equal(t, http.StatusOK, rec.Code)

	ownerToken := loginToken(t, r, "owner@example.com", "Abcdefg1")
	otherToken := loginToken(t, r, "other@example.com", "Abcdefg1")

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	var createdID float64

	t.Run("requires a bearer token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/time-entries", "",
			map[string]any{"startTime": start})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("creates an entry for the token's owner", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/time-entries", ownerToken,
			map[string]any{"startTime": start, "endTime": end, "description": "reading"})
		require.Equal(t, http.StatusCreated, rec.Code)

		entry := decodeBody(t, rec)["timeEntry"].(map[string]any)
		createdID = entry["id"].(float64)
		require.Positive(t, createdID)
		require.Equal(t, "reading", entry["description"])
	})

	t.Run("rejects end before start", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/time-entries", ownerToken,
			map[string]any{"startTime": start, "endTime": start.Add(-time.Minute)})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("owner can fetch the entry", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet,
			"/api/time-entries/"+strconv.Itoa(int(createdID)), ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another user's token gets not found", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet,
			"/api/time-entries/"+strconv.Itoa(int(createdID)), otherToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list is scoped to the token's owner", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/time-entries", ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decodeBody(t, rec)["timeEntries"], 1)

		rec = doJSON(t, r, http.MethodGet, "/api/time-entries", otherToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, decodeBody(t, rec)["timeEntries"])
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/time-entries/abc", ownerToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, "true")

	t.Run("livez", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", decodeBody(t, rec)["status"])
	})

	t.Run("readyz", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "ok", body["status"])
		require.Equal(t, "ok", body["checks"].(map[string]any)["database"])
	})
}

func TestRegisterThenLoginFlow(t *testing.T) {
	r := newTestRouter(t, "true")

	rec := doJSON(t, r, http.MethodPost, "/auth/register", "",
		registerBody("User@Example.com", "Abcdefg1"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user@example.com",
		decodeBody(t, rec)["user"].(map[string]any)["email"])

	token := loginToken(t, r, "user@example.com", "Abcdefg1")
	require.NotEmpty(t, token)

	rec = doJSON(t, r, http.MethodPost, "/auth/login", "",
		registerBody("user@example.com", "Wrongpass1"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
