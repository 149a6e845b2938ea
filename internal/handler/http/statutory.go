package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	statutoryService "github.com/vetanpay/payroll-backend-go/internal/service/statutory"
)

type StatutoryHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
	GetLeavePolicy(w http.ResponseWriter, r *http.Request)
	UpdateLeavePolicy(w http.ResponseWriter, r *http.Request)
}

type StatutoryHandlerImpl struct {
	statutoryService *statutoryService.Service
}

func NewStatutoryHandler(svc *statutoryService.Service) StatutoryHandler {
	return &StatutoryHandlerImpl{statutoryService: svc}
}

// GetConfig implements StatutoryHandler.
func (h *StatutoryHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.statutoryService.GetConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

// UpdateConfig implements StatutoryHandler.
func (h *StatutoryHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req statutory.UpdateConfigRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Statutory config decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.statutoryService.UpdateConfig(r.Context(), middleware.RoleFromRequest(r), req)
	if err != nil {
		slog.Error("Statutory config service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Statutory config updated", cfg)
}

// GetLeavePolicy implements StatutoryHandler.
func (h *StatutoryHandlerImpl) GetLeavePolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.statutoryService.GetLeavePolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

// UpdateLeavePolicy implements StatutoryHandler.
func (h *StatutoryHandlerImpl) UpdateLeavePolicy(w http.ResponseWriter, r *http.Request) {
	var req statutory.UpdateLeavePolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Leave policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.statutoryService.UpdateLeavePolicy(r.Context(), middleware.RoleFromRequest(r), req)
	if err != nil {
		slog.Error("Leave policy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy updated", policy)
}
