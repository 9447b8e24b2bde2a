package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AllowanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AllowanceHandlerImpl struct {
	allowanceService allowance.Service
}

// Create implements AllowanceHandler.
func (h *AllowanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID    string  `json:"employee_id"`
		TimeOffType   string  `json:"time_off_type"`
		FromDate      string  `json:"from_date"`
		ToDate        *string `json:"to_date"`
		AllowedLeaves float64 `json:"allowed_leaves"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	fromDate, err := parseDate(body.FromDate)
	if err != nil {
		response.BadRequest(w, "Invalid from_date, expected YYYY-MM-DD", nil)
		return
	}

	req := allowance.CreateAllowanceRequest{
		EmployeeID:    body.EmployeeID,
		TimeOffType:   allowance.TimeOffType(body.TimeOffType),
		FromDate:      fromDate,
		AllowedLeaves: body.AllowedLeaves,
	}
	if body.ToDate != nil {
		toDate, err := parseDate(*body.ToDate)
		if err != nil {
			response.BadRequest(w, "Invalid to_date, expected YYYY-MM-DD", nil)
			return
		}
		req.ToDate = &toDate
	}

	a, err := h.allowanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave allowance created successfully", allowance.ToAllowanceResponse(a))
}

// Approve implements AllowanceHandler.
func (h *AllowanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Allowance ID is required", nil)
		return
	}

	if err := h.allowanceService.Approve(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allowance approved successfully", nil)
}

// Reset implements AllowanceHandler.
func (h *AllowanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Allowance ID is required", nil)
		return
	}

	if err := h.allowanceService.ResetToDraft(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allowance reset to draft", nil)
}

// Get implements AllowanceHandler.
func (h *AllowanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Allowance ID is required", nil)
		return
	}

	a, err := h.allowanceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, allowance.ToAllowanceResponse(a))
}

func NewAllowanceHandler(allowanceService allowance.Service) AllowanceHandler {
	return &AllowanceHandlerImpl{allowanceService: allowanceService}
}
