package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
	arrearService "github.com/vetanpay/payroll-backend-go/internal/service/arrear"
)

type ArrearHandler interface {
	CreateDraft(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
}

type ArrearHandlerImpl struct {
	arrearService *arrearService.Service
}

func NewArrearHandler(svc *arrearService.Service) ArrearHandler {
	return &ArrearHandlerImpl{arrearService: svc}
}

// CreateDraft implements ArrearHandler.
func (h *ArrearHandlerImpl) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req arrear.CreateBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Arrear draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	batch, err := h.arrearService.CreateDraft(r.Context(), req)
	if err != nil {
		slog.Error("Arrear draft service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Arrear draft created", arrear.ToBatchResponse(batch))
}

// List implements ArrearHandler.
func (h *ArrearHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	batches, err := h.arrearService.ListBatches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]arrear.BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, arrear.ToBatchResponse(b))
	}
	response.Success(w, responses)
}

// Get implements ArrearHandler.
func (h *ArrearHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	batch, err := h.arrearService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, arrear.ToBatchResponse(batch))
}

// Recompute implements ArrearHandler.
func (h *ArrearHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	batch, err := h.arrearService.Recompute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Arrear recompute service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Arrear batch recomputed", arrear.ToBatchResponse(batch))
}

// Finalize implements ArrearHandler.
func (h *ArrearHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	batch, err := h.arrearService.Finalize(r.Context(), middleware.RoleFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Arrear finalize service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Arrear batch finalized", arrear.ToBatchResponse(batch))
}
