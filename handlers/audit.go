package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fyb-funds/fund-service/middleware"
	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// AuditHandler serves the weekly dues ledger and records payment marks
type AuditHandler struct {
	service *services.LedgerService
}

// NewAuditHandler creates a new instance of AuditHandler
func NewAuditHandler(service *services.LedgerService) *AuditHandler {
	return &AuditHandler{service: service}
}

// GetWeeklyLedger handles GET /api/audit/weekly?weeks=N
func (h *AuditHandler) GetWeeklyLedger(w http.ResponseWriter, r *http.Request) {
	weeks := services.DefaultLedgerWeeks
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "weeks must be an integer")
			return
		}
		weeks = parsed
	}

	logs, err := h.service.BuildLedger(r.Context(), weeks)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, logs)
}

// MarkPayment handles POST /api/payments/mark
func (h *AuditHandler) MarkPayment(w http.ResponseWriter, r *http.Request) {
	var req services.MarkPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Attribution comes from the resolved role, never the request body.
	req.MarkedBy = string(middleware.RoleFromContext(r.Context()))

	record, err := h.service.MarkWeek(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}
