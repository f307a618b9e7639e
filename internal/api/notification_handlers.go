package api

import "net/http"

// ProcessNotifications runs the notification sweep. Meant to be hit by a
// cron job or external scheduler; when NOTIFICATIONS_SECRET is configured
// the caller must present it as a bearer token.
func (h *Handlers) ProcessNotifications(w http.ResponseWriter, r *http.Request) {
	if h.notifySecret != "" && r.Header.Get("Authorization") != "Bearer "+h.notifySecret {
		h.error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	processed, err := h.notifications.ProcessDue(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.respond(w, map[string]interface{}{
		"message":   "notifications processed",
		"processed": processed,
	}, http.StatusOK)
}
