package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires every endpoint. /api/auth/register, /login and the
// notification sweep are open; everything else sits behind the session
// middleware.
func (h *Handlers) Router() http.Handler {
	router := mux.NewRouter()

	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	// Guarded by a shared secret, not a user session: meant for a cron caller.
	router.HandleFunc("/api/notifications/process", h.ProcessNotifications).Methods(http.MethodPost)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(h.auth.Middleware)

	apiRouter.HandleFunc("/auth/session", h.Session).Methods(http.MethodGet)

	apiRouter.HandleFunc("/reminders", h.ListReminders).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reminders", h.CreateReminder).Methods(http.MethodPost)
	apiRouter.HandleFunc("/reminders/weekly", h.WeeklyReminders).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reminders/{id}", h.UpdateReminder).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/reminders/{id}", h.DeleteReminder).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	apiRouter.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	apiRouter.HandleFunc("/categories/{id}", h.UpdateCategory).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods(http.MethodDelete)

	return router
}
