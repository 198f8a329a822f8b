package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fyb-funds/fund-service/models"
	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// MemberHandler handles HTTP requests for the roster
type MemberHandler struct {
	service *services.MemberService
}

// NewMemberHandler creates a new instance of MemberHandler
func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// GetMember handles GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// CreateMember handles POST /api/members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req services.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.service.CreateMember(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, member)
}

// UpdateMember handles PUT /api/members/{id}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var update models.MemberUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.service.UpdateMember(r.Context(), r.PathValue("id"), update)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// DeleteMember handles DELETE /api/members/{id}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveRequest moves a member either one step (direction) or onto another
// member (targetId, the drag-and-drop case). Exactly one must be present.
type moveRequest struct {
	Direction *string `json:"direction,omitempty"`
	TargetID  *string `json:"targetId,omitempty"`
}

// MoveMember handles POST /api/members/{id}/move
func (h *MemberHandler) MoveMember(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if (req.Direction == nil) == (req.TargetID == nil) {
		utils.RespondWithError(w, http.StatusBadRequest, "exactly one of direction or targetId is required")
		return
	}

	id := r.PathValue("id")
	var members []models.Member
	var err error
	if req.Direction != nil {
		members, err = h.service.MoveAdjacent(r.Context(), id, *req.Direction)
	} else {
		members, err = h.service.MoveToPosition(r.Context(), id, *req.TargetID)
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}
