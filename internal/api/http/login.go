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

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized)
		default:
			log.Error("login failed", "err", err)
			writeError(w, http.StatusInternalServerError)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}
