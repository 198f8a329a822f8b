package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fyb-funds/fund-service/models"
	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// ItemHandler handles HTTP requests for the equipment catalog
type ItemHandler struct {
	service *services.CatalogService
}

// NewItemHandler creates a new instance of ItemHandler
func NewItemHandler(service *services.CatalogService) *ItemHandler {
	return &ItemHandler{service: service}
}

// ListItems handles GET /api/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req services.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var update models.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.UpdateItem(r.Context(), r.PathValue("id"), update)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
