package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// OrderHandler handles HTTP requests for equipment orders
type OrderHandler struct {
	service *services.CatalogService
}

// NewOrderHandler creates a new instance of OrderHandler
func NewOrderHandler(service *services.CatalogService) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}
