package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"reminder-organizer/internal/auth"
	"reminder-organizer/internal/model"
	"reminder-organizer/internal/service"
)

type categoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)

	categories, err := h.categories.List(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	h.respond(w, categories, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := service.CategoryInput{Icon: req.Icon}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Color != nil {
		input.Color = *req.Color
	}

	category, err := h.categories.Create(r.Context(), userID, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, category, http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	id := mux.Vars(r)["id"]

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categories.Update(r.Context(), userID, id, service.CategoryPatch{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, category, http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	id := mux.Vars(r)["id"]

	if err := h.categories.Delete(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respond(w, map[string]string{"message": "category deleted"}, http.StatusOK)
}
