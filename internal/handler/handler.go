package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/mail"

	"github.com/devconnect/backend/internal/integrations/github"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	gh  *github.Client
	log *logrus.Logger
}

func NewHandler(svc *service.Service, gh *github.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, gh: gh, log: log}
}

type apiError struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrors emits the structured error body used for validation and
// domain errors.
func writeErrors(w http.ResponseWriter, code int, msgs ...string) {
	errs := make([]apiError, 0, len(msgs))
	for _, msg := range msgs {
		errs = append(errs, apiError{Msg: msg})
	}
	writeJSON(w, code, map[string][]apiError{"errors": errs})
}

// serverError logs the failure and returns a generic plain-text 500.
func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.log.Errorf("Unexpected error: %v", err)
	http.Error(w, "Server Error", http.StatusInternalServerError)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// callerID reads the authenticated user id attached by the auth
// middleware. Protected routes always have one; the false case only
// guards against a route mounted outside the auth subrouter.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeErrors(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, ok
}
