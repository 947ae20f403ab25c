package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shared-calendar/internal/model"
	"shared-calendar/internal/repository"
)

// UserHandler provides HTTP transport for user accounts.
type UserHandler struct {
	users *repository.UserRepository
}

// Create POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		TelegramChatID int64  `json:"telegramChatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	user := &model.User{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		TelegramChatID: req.TelegramChatID,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Get GET /api/users/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.FindByID(r.Context(), uint(id))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// requester resolves the calling user from the X-User-ID header.
func requester(r *http.Request, users *repository.UserRepository) (*model.User, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return nil, errors.New("missing X-User-ID header")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New("malformed X-User-ID header")
	}
	user, err := users.FindByID(r.Context(), uint(id))
	if err != nil {
		return nil, errors.New("unknown user")
	}
	return user, nil
}
