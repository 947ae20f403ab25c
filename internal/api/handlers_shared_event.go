package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shared-calendar/internal/model"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/service"
)

// SharedEventHandler provides HTTP transport for the shared-event lifecycle.
type SharedEventHandler struct {
	users  *repository.UserRepository
	shared *service.SharedEventService
}

// Create POST /api/shared-events
func (h *SharedEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := requester(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req struct {
		Title           string   `json:"title"`
		InviteEmails    []string `json:"inviteEmails"`
		IdealDays       []int    `json:"idealDays"`
		StartDate       string   `json:"startDate"`
		EndDate         string   `json:"endDate"`
		DailyStartMin   int      `json:"dailyStartMin"`
		DailyEndMin     int      `json:"dailyEndMin"`
		DurationMinutes int      `json:"durationMinutes"`
		RepeatType      string   `json:"repeatType"`
		RepeatCount     int      `json:"repeatCount"`
		ReminderOffsets []int    `json:"reminderOffsets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	event, err := h.shared.Create(r.Context(), user, service.SharedEventInput{
		Title:           req.Title,
		InviteEmails:    req.InviteEmails,
		IdealDays:       req.IdealDays,
		StartDate:       startDate,
		EndDate:         endDate,
		DailyStartMin:   req.DailyStartMin,
		DailyEndMin:     req.DailyEndMin,
		DurationMinutes: req.DurationMinutes,
		RepeatType:      req.RepeatType,
		RepeatCount:     req.RepeatCount,
		ReminderOffsets: req.ReminderOffsets,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Get GET /api/shared-events/{id}
func (h *SharedEventHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withEvent(w, r, h.shared.Get)
}

// Accept POST /api/shared-events/{id}/accept
func (h *SharedEventHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.withEvent(w, r, h.shared.AcceptInvite)
}

// Reject POST /api/shared-events/{id}/reject
func (h *SharedEventHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.withEvent(w, r, h.shared.RejectInvite)
}

// Arrange POST /api/shared-events/{id}/arrange
func (h *SharedEventHandler) Arrange(w http.ResponseWriter, r *http.Request) {
	h.withEvent(w, r, h.shared.Arrange)
}

// Save POST /api/shared-events/{id}/save
func (h *SharedEventHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.withEvent(w, r, h.shared.Save)
}

// Delete DELETE /api/shared-events/{id}
func (h *SharedEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := requester(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.shared.Delete(r.Context(), mux.Vars(r)["id"], user); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SharedEventHandler) withEvent(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string, user *model.User) (*model.SharedEvent, error)) {
	user, err := requester(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	event, err := op(r.Context(), mux.Vars(r)["id"], user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
