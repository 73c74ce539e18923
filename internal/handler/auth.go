package handler

import (
	"errors"
	"net/http"

	"github.com/devconnect/backend/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) validate() []string {
	var msgs []string
	if !isValidEmail(req.Email) {
		msgs = append(msgs, "Please include a valid email")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	return msgs
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeErrors(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CurrentUser returns the caller's user record, password hash excluded
// by serialization.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
