package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	payrollService "github.com/vetanpay/payroll-backend-go/internal/service/payroll"

	"log/slog"
)

type PayrollHandler interface {
	RunBatch(w http.ResponseWriter, r *http.Request)
	Freeze(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
	ListResults(w http.ResponseWriter, r *http.Request)
	GetResult(w http.ResponseWriter, r *http.Request)
	PeriodStatus(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollService.Service
}

func NewPayrollHandler(svc *payrollService.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: svc}
}

// RunBatch implements PayrollHandler.
func (h *PayrollHandlerImpl) RunBatch(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.RunBatch(r.Context(), month, year)
	if err != nil {
		slog.Error("Payroll batch error", "month", month, "year", year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch processed", summary)
}

// Freeze implements PayrollHandler.
func (h *PayrollHandlerImpl) Freeze(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.Freeze(r.Context(), middleware.RoleFromRequest(r), month, year); err != nil {
		slog.Error("Payroll freeze error", "month", month, "year", year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period finalized", nil)
}

// Unlock implements PayrollHandler.
func (h *PayrollHandlerImpl) Unlock(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.Unlock(r.Context(), middleware.RoleFromRequest(r), month, year); err != nil {
		slog.Error("Payroll unlock error", "month", month, "year", year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period unlocked", nil)
}

// ListResults implements PayrollHandler.
func (h *PayrollHandlerImpl) ListResults(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.payrollService.ListPeriod(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponses(results))
}

// GetResult implements PayrollHandler.
func (h *PayrollHandlerImpl) GetResult(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetResult(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponse(result))
}

// PeriodStatus implements PayrollHandler.
func (h *PayrollHandlerImpl) PeriodStatus(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.payrollService.PeriodStatus(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
