package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"reminder-organizer/internal/auth"
	"reminder-organizer/internal/model"
	"reminder-organizer/internal/service"
)

type reminderRequest struct {
	Title                string  `json:"title"`
	Description          *string `json:"description"`
	DueDate              *string `json:"dueDate"`
	CategoryID           *string `json:"categoryId"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	ReminderFrequency    *string `json:"reminderFrequency"`
	Recurring            bool    `json:"recurring"`
	RecurrenceFrequency  *string `json:"recurrenceFrequency"`
}

type reminderPatchRequest struct {
	Title                *string   `json:"title"`
	Description          *string   `json:"description"`
	DueDate              *string   `json:"dueDate"`
	CategoryID           *string   `json:"categoryId"`
	Completed            *bool     `json:"completed"`
	NotificationsEnabled *bool     `json:"notificationsEnabled"`
	ReminderFrequency    *string   `json:"reminderFrequency"`
	CompletionHistory    *[]string `json:"completionHistory"`
	CompletedAt          *string   `json:"completedAt"`
}

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)

	reminders, err := h.reminders.List(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	h.respond(w, reminders, http.StatusOK)
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)

	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := service.ReminderInput{
		Title:                req.Title,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		Recurring:            req.Recurring,
		RecurrenceFrequency:  req.RecurrenceFrequency,
	}
	if req.NotificationsEnabled != nil {
		input.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.ReminderFrequency != nil {
		input.ReminderFrequency = *req.ReminderFrequency
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			h.error(w, "invalid dueDate", http.StatusBadRequest)
			return
		}
		input.DueDate = &due
	}

	reminder, created, err := h.reminders.Create(r.Context(), userID, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	status := http.StatusCreated
	if !created {
		// Canonical recurring reminder updated in place.
		status = http.StatusOK
	}
	h.respond(w, reminder, status)
}

func (h *Handlers) WeeklyReminders(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	view, err := h.reminders.Weekly(r.Context(), userID, date)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, view, http.StatusOK)
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	id := mux.Vars(r)["id"]

	var req reminderPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := service.ReminderPatch{
		Title:                req.Title,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		Completed:            req.Completed,
		NotificationsEnabled: req.NotificationsEnabled,
		ReminderFrequency:    req.ReminderFrequency,
		CompletionHistory:    req.CompletionHistory,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			h.error(w, "invalid dueDate", http.StatusBadRequest)
			return
		}
		patch.DueDate = &due
	}
	if req.CompletedAt != nil && *req.CompletedAt != "" {
		at, err := parseDate(*req.CompletedAt)
		if err != nil {
			h.error(w, "invalid completedAt", http.StatusBadRequest)
			return
		}
		patch.CompletedAt = &at
	}

	reminder, err := h.reminders.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, reminder, http.StatusOK)
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	id := mux.Vars(r)["id"]

	if err := h.reminders.Delete(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, map[string]string{"message": "reminder deleted"}, http.StatusOK)
}
