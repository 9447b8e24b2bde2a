package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
}

// AttendanceHandlerImpl records raw check-in facts. There is no workflow
// around check-ins, so the handler talks to the repository directly.
type AttendanceHandlerImpl struct {
	checkInRepo attendance.CheckInRepository
}

// CheckIn implements AttendanceHandler. The timestamp defaults to now.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID string `json:"employee_id"`
		CheckIn    string `json:"check_in"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if body.EmployeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	checkedInAt := time.Now().UTC()
	if body.CheckIn != "" {
		parsed, err := time.Parse(time.RFC3339, body.CheckIn)
		if err != nil {
			response.BadRequest(w, "Invalid check_in, expected RFC3339 timestamp", nil)
			return
		}
		checkedInAt = parsed
	}

	c, err := h.checkInRepo.Create(r.Context(), attendance.CheckIn{
		EmployeeID: body.EmployeeID,
		CheckIn:    checkedInAt,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded successfully", map[string]string{
		"id":       c.ID,
		"check_in": c.CheckIn.Format(time.RFC3339),
	})
}

func NewAttendanceHandler(checkInRepo attendance.CheckInRepository) AttendanceHandler {
	return &AttendanceHandlerImpl{checkInRepo: checkInRepo}
}
