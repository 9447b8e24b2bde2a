package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdjustmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type AdjustmentHandlerImpl struct {
	adjustmentService adjustment.Service
}

// Create implements AdjustmentHandler.
func (h *AdjustmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID     string  `json:"employee_id"`
		Type           string  `json:"type"`
		Amount         float64 `json:"amount"`
		Reason         string  `json:"reason"`
		AdjustmentDate string  `json:"adjustment_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adjustmentDate, err := parseDate(body.AdjustmentDate)
	if err != nil {
		response.BadRequest(w, "Invalid adjustment_date, expected YYYY-MM-DD", nil)
		return
	}

	adj, err := h.adjustmentService.Create(r.Context(), adjustment.CreateAdjustmentRequest{
		EmployeeID:     body.EmployeeID,
		Type:           adjustment.Type(body.Type),
		Amount:         body.Amount,
		Reason:         body.Reason,
		AdjustmentDate: adjustmentDate,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave adjustment created successfully", adjustment.ToAdjustmentResponse(adj))
}

// Submit implements AdjustmentHandler.
func (h *AdjustmentHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Adjustment ID is required", nil)
		return
	}

	if err := h.adjustmentService.Submit(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave adjustment submitted successfully", nil)
}

// Approve implements AdjustmentHandler.
func (h *AdjustmentHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Adjustment ID is required", nil)
		return
	}

	if err := h.adjustmentService.Approve(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave adjustment approved successfully", nil)
}

// Reject implements AdjustmentHandler.
func (h *AdjustmentHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Adjustment ID is required", nil)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	err := h.adjustmentService.Reject(r.Context(), adjustment.RejectAdjustmentRequest{
		ID:     id,
		Reason: body.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave adjustment rejected", nil)
}

// ListByEmployee implements AdjustmentHandler.
func (h *AdjustmentHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	adjustments, err := h.adjustmentService.GetByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]adjustment.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		result = append(result, adjustment.ToAdjustmentResponse(adj))
	}
	response.Success(w, result)
}

func NewAdjustmentHandler(adjustmentService adjustment.Service) AdjustmentHandler {
	return &AdjustmentHandlerImpl{adjustmentService: adjustmentService}
}
