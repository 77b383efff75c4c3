package http

import (
	"net/http"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/pkg/httpx"
)

// Every response uses one envelope: {"success":true, ...payload} on the
// happy path, {"success":false,"error":{"name":...}} otherwise. Error names
// are the standard status texts; nothing else about a failure leaks out.

type errorName struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorName `json:"error"`
}

type userResponse struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type timeEntryResponse struct {
	Success   bool             `json:"success"`
	TimeEntry domain.TimeEntry `json:"timeEntry"`
}

type timeEntryListResponse struct {
	Success     bool               `json:"success"`
	TimeEntries []domain.TimeEntry `json:"timeEntries"`
}

type healthChecks struct {
	Database string `json:"database"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}

func writeError(w http.ResponseWriter, code int) {
	httpx.WriteJSON(w, code, errorResponse{
		Success: false,
		Error:   errorName{Name: http.StatusText(code)},
	})
}
