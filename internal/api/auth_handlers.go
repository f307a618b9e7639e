package api

import (
	"net/http"

	"reminder-organizer/internal/auth"
	"reminder-organizer/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User *model.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authSvc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	if !h.setSession(w, user.ID) {
		return
	}
	h.respond(w, sessionResponse{User: user}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	if !h.setSession(w, user.ID) {
		return
	}
	h.respond(w, sessionResponse{User: user}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, map[string]string{"message": "logged out"}, http.StatusOK)
}

// Session returns the authenticated user, mirroring what SPA clients poll
// on load.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		h.error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.authSvc.UserByID(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, sessionResponse{User: user}, http.StatusOK)
}

func (h *Handlers) setSession(w http.ResponseWriter, userID string) bool {
	token, expiresAt, err := h.auth.GenerateToken(userID)
	if err != nil {
		h.serviceError(w, err)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
