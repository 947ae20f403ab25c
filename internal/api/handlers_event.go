package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"shared-calendar/internal/ics"
	"shared-calendar/internal/model"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/service"
)

// EventHandler provides HTTP transport for calendar events.
type EventHandler struct {
	users  *repository.UserRepository
	events *service.EventService
}

type eventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	RecurrenceRule  string    `json:"recurrenceRule"`
	ReminderOffsets []int     `json:"reminderOffsets"`
}

func (r eventRequest) input() service.EventInput {
	return service.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		RecurrenceRule:  r.RecurrenceRule,
		ReminderOffsets: r.ReminderOffsets,
	}
}

// Create POST /api/users/{userId}/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := h.pathUser(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	event, err := h.events.Create(r.Context(), user, req.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// List GET /api/users/{userId}/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := h.pathUser(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	events, err := h.events.List(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
}

// Get GET /api/users/{userId}/events/{eventId}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, eventID, err := h.pathUserEvent(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	event, err := h.events.Get(r.Context(), user, eventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Update PUT /api/users/{userId}/events/{eventId}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, eventID, err := h.pathUserEvent(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	event, err := h.events.Update(r.Context(), user, eventID, req.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete DELETE /api/users/{userId}/events/{eventId}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, eventID, err := h.pathUserEvent(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.events.Delete(r.Context(), user, eventID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Feed GET /api/users/{userId}/calendar.ics
func (h *EventHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user, err := h.pathUser(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	events, err := h.events.List(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Feed(user, events)))
}

func (h *EventHandler) pathUser(r *http.Request) (*model.User, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", model.ErrValidation)
	}
	return h.users.FindByID(r.Context(), uint(id))
}

func (h *EventHandler) pathUserEvent(r *http.Request) (*model.User, uint, error) {
	user, err := h.pathUser(r)
	if err != nil {
		return nil, 0, err
	}
	eventID, err := strconv.ParseUint(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid event id", model.ErrValidation)
	}
	return user, uint(eventID), nil
}
