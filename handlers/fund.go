package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fyb-funds/fund-service/middleware"
	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// FundHandler handles HTTP requests for the club fund
type FundHandler struct {
	service *services.FundService
}

// NewFundHandler creates a new instance of FundHandler
func NewFundHandler(service *services.FundService) *FundHandler {
	return &FundHandler{service: service}
}

// GetFund handles GET /api/fund
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// UpdateFund handles PUT /api/fund
func (h *FundHandler) UpdateFund(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UpdatedBy = string(middleware.RoleFromContext(r.Context()))

	summary, err := h.service.UpdateBaseAmount(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
