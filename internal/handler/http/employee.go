package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	employeeService "github.com/vetanpay/payroll-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkImport(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeService.Service
}

func NewEmployeeHandler(svc *employeeService.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: svc}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		slog.Error("Employee list error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	response.Success(w, responses)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(e))
}

// Upsert implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req employee.UpsertEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Employee upsert decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.employeeService.Upsert(r.Context(), req)
	if err != nil {
		slog.Error("Employee upsert service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(saved))
}

// BulkImport implements EmployeeHandler.
func (h *EmployeeHandlerImpl) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkImportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Employee import decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.BulkImport(r.Context(), req)
	if err != nil {
		slog.Error("Employee import service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import complete", result)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}
