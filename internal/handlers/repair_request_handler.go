package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/khunmostz/Repair-Management-System/internal/middleware"
	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
	"github.com/khunmostz/Repair-Management-System/internal/services"
	"github.com/khunmostz/Repair-Management-System/pkg/utils"
)

type RepairRequestHandler struct {
	Service *services.RepairRequestService
}

func NewRepairRequestHandler(s *services.RepairRequestService) *RepairRequestHandler {
	return &RepairRequestHandler{Service: s}
}

func (h *RepairRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateRepairRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.Service.CreateRequest(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, request)
}

func (h *RepairRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	request, err := h.Service.GetRequest(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Repair request not found")
		return
	}

	// Requesters may only see their own requests.
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if role == models.RoleRequester && request.RequesterID != userID {
		utils.Error(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

// ListRequests returns repair requests visible to the caller. Admins
// and technicians see everything, requesters only their own.
func (h *RepairRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListRequests(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleRequester {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		own := make([]models.RepairRequest, 0, len(requests))
		for _, req := range requests {
			if req.RequesterID == userID {
				own = append(own, req)
			}
		}
		requests = own
	}

	utils.JSON(w, http.StatusOK, requests)
}

func (h *RepairRequestHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req models.UpdateRepairRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.Service.UpdateRequest(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Repair request not found")
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

func (h *RepairRequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	if err := h.Service.DeleteRequest(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Repair request not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Repair request deleted"})
}
