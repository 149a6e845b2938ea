package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	ledgerService "github.com/vetanpay/payroll-backend-go/internal/service/ledger"
)

type LedgerHandler interface {
	GetLeaveLedger(w http.ResponseWriter, r *http.Request)
	UpdateLeaveLedger(w http.ResponseWriter, r *http.Request)
	GetAdvanceLedger(w http.ResponseWriter, r *http.Request)
	ListAdvanceLedgers(w http.ResponseWriter, r *http.Request)
	UpdateAdvanceLedger(w http.ResponseWriter, r *http.Request)
	SaveFine(w http.ResponseWriter, r *http.Request)
	ListFines(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService *ledgerService.Service
}

func NewLedgerHandler(svc *ledgerService.Service) LedgerHandler {
	return &LedgerHandlerImpl{ledgerService: svc}
}

// GetLeaveLedger implements LedgerHandler.
func (h *LedgerHandlerImpl) GetLeaveLedger(w http.ResponseWriter, r *http.Request) {
	lgr, err := h.ledgerService.GetLeaveLedger(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, lgr)
}

// UpdateLeaveLedger implements LedgerHandler.
func (h *LedgerHandlerImpl) UpdateLeaveLedger(w http.ResponseWriter, r *http.Request) {
	var req ledger.UpdateLeaveLedgerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Leave ledger update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	saved, err := h.ledgerService.UpdateLeaveLedger(r.Context(), req)
	if err != nil {
		slog.Error("Leave ledger update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

// GetAdvanceLedger implements LedgerHandler.
func (h *LedgerHandlerImpl) GetAdvanceLedger(w http.ResponseWriter, r *http.Request) {
	adv, err := h.ledgerService.GetAdvanceLedger(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adv)
}

// ListAdvanceLedgers implements LedgerHandler.
func (h *LedgerHandlerImpl) ListAdvanceLedgers(w http.ResponseWriter, r *http.Request) {
	ledgers, err := h.ledgerService.ListAdvanceLedgers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ledgers)
}

// UpdateAdvanceLedger implements LedgerHandler.
func (h *LedgerHandlerImpl) UpdateAdvanceLedger(w http.ResponseWriter, r *http.Request) {
	var req ledger.UpdateAdvanceLedgerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Advance ledger update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	saved, err := h.ledgerService.UpdateAdvanceLedger(r.Context(), req)
	if err != nil {
		slog.Error("Advance ledger update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

// SaveFine implements LedgerHandler.
func (h *LedgerHandlerImpl) SaveFine(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req ledger.SaveFineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Fine save decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Month = month
	req.Year = year

	saved, err := h.ledgerService.SaveFine(r.Context(), req)
	if err != nil {
		slog.Error("Fine save service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

// ListFines implements LedgerHandler.
func (h *LedgerHandlerImpl) ListFines(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	fines, err := h.ledgerService.ListFines(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, fines)
}
