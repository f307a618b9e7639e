// Package api exposes the HTTP JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"reminder-organizer/internal/auth"
	"reminder-organizer/internal/service"
)

// Handlers bundles the HTTP endpoints with their dependencies.
type Handlers struct {
	auth          *auth.Auth
	authSvc       *service.AuthService
	categories    *service.CategoryService
	reminders     *service.ReminderService
	notifications *service.NotificationService
	notifySecret  string
}

func New(
	a *auth.Auth,
	authSvc *service.AuthService,
	categories *service.CategoryService,
	reminders *service.ReminderService,
	notifications *service.NotificationService,
	notifySecret string,
) *Handlers {
	return &Handlers{
		auth:          a,
		authSvc:       authSvc,
		categories:    categories,
		reminders:     reminders,
		notifications: notifications,
		notifySecret:  notifySecret,
	}
}

func (h *Handlers) respond(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *Handlers) error(w http.ResponseWriter, message string, status int) {
	h.respond(w, map[string]string{"error": message}, status)
}

// serviceError maps service-level failures onto the response taxonomy:
// validation → 400 with field detail, not-found → 404, bad credentials →
// 401, duplicate email → 409, anything else → logged generic 500.
func (h *Handlers) serviceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		h.respond(w, map[string]string{
			"error":   "invalid data",
			"field":   ve.Field,
			"message": ve.Message,
		}, http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		h.error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		h.error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrEmailTaken):
		h.error(w, "email already registered", http.StatusConflict)
	default:
		log.Printf("internal error: %v", err)
		h.error(w, "internal error", http.StatusInternalServerError)
	}
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
