package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lang-track/api/internal/api/domain"
	"github.com/lang-track/api/internal/api/service"
	"github.com/lang-track/api/pkg/httpx"
	"github.com/lang-track/api/pkg/slogx"
)

type TimeEntriesHandler struct {
	TimeEntryService *service.TimeEntryService
}

type createTimeEntryRequest struct {
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Description *string    `json:"description"`
}

func (h *TimeEntriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized)
		return
	}

	var req createTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	entry, err := h.TimeEntryService.Create(ctx, userID, service.CreateTimeEntryInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest)
			return
		}
		log.Error("failed to create time entry", "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, timeEntryResponse{Success: true, TimeEntry: entry})
}

func (h *TimeEntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized)
		return
	}

	entries, err := h.TimeEntryService.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list time entries", "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}

	httpx.WriteJSON(w, http.StatusOK, timeEntryListResponse{Success: true, TimeEntries: entries})
}

func (h *TimeEntriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest)
		return
	}

	entry, err := h.TimeEntryService.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, service.ErrTimeEntryNotFound) {
			writeError(w, http.StatusNotFound)
			return
		}
		log.Error("failed to load time entry", "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, timeEntryResponse{Success: true, TimeEntry: entry})
}
