package handler

import (
	"context"
	"net/http"

	"recipe-api/internal/model"
	"recipe-api/internal/service"

	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe-related HTTP requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// List handles GET /recipes/ requests.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	recipes, err := h.service.List(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewRecipeResponses(recipes))
}

// Create handles POST /recipes/ requests.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var req model.RecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	recipe, err := h.service.Create(r.Context(), caller.UserID, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewRecipeResponse(*recipe))
}

// Get handles GET /recipes/{id}/ requests.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	recipe, err := h.service.Get(r.Context(), caller.UserID, id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewRecipeResponse(*recipe))
}

// Update handles PUT /recipes/{id}/ requests.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.modify(w, r, h.service.Update)
}

// Patch handles PATCH /recipes/{id}/ requests.
func (h *RecipeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.modify(w, r, h.service.Patch)
}

type modifyFunc func(ctx context.Context, userID, id int64, req *model.RecipeRequest) (*model.Recipe, error)

func (h *RecipeHandler) modify(w http.ResponseWriter, r *http.Request, apply modifyFunc) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var req model.RecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	recipe, err := apply(r.Context(), caller.UserID, id, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewRecipeResponse(*recipe))
}

// Delete handles DELETE /recipes/{id}/ requests.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), caller.UserID, id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
