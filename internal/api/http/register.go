package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/service"
	"github.com/lang-track/api/pkg/httpx"
	"github.com/lang-track/api/pkg/slogx"
)

// RegistrationGate blocks the wrapped endpoint unless the configured flag is
// exactly the string "true". Anything else, including an unset flag, is a
// closed gate.
func RegistrationGate(allowRegistration string) httpx.Middleware {
	allowed := allowRegistration == "true"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed {
				writeError(w, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(ctx, req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest)
		case errors.Is(err, service.ErrDuplicateUser):
			// Indistinguishable from a validation failure on purpose; the
			// endpoint must not confirm which emails are registered.
			writeError(w, http.StatusBadRequest)
		default:
			log.Error("registration failed", "err", err)
			writeError(w, http.StatusInternalServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
