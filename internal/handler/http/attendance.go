package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	"github.com/vetanpay/payroll-backend-go/internal/service/leave"
)

type AttendanceHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	leaveService *leave.Service
}

func NewAttendanceHandler(svc *leave.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{leaveService: svc}
}

// Save implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req ledger.SaveAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Attendance save decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Month = month
	req.Year = year

	saved, err := h.leaveService.SaveAttendance(r.Context(), req)
	if err != nil {
		slog.Error("Attendance save service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

// Get implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	att, err := h.leaveService.GetAttendance(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, att)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.leaveService.ListAttendance(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
