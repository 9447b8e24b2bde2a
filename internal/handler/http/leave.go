package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID string `json:"employee_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		response.BadRequest(w, "Invalid start_date, expected YYYY-MM-DD", nil)
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		response.BadRequest(w, "Invalid end_date, expected YYYY-MM-DD", nil)
		return
	}

	req, err := h.leaveService.Create(r.Context(), leave.CreateRequestRequest{
		EmployeeID: body.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     body.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leave.ToRequestResponse(req))
}

// Approve implements LeaveHandler. The approver identity comes from the
// access token.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	approvedBy, _ := claims["user_id"].(string)

	if err := h.leaveService.Approve(r.Context(), id, approvedBy, time.Now().UTC()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", nil)
}

// ListByEmployee implements LeaveHandler.
func (h *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	requests, err := h.leaveService.GetByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		result = append(result, leave.ToRequestResponse(req))
	}
	response.Success(w, result)
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}
