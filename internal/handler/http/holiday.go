package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.Service
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	ph, err := h.holidayService.Create(r.Context(), holiday.CreateHolidayRequest{
		Name: body.Name,
		Date: date,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Public holiday created successfully", holiday.ToHolidayResponse(ph))
}

// Approve implements HolidayHandler.
func (h *HolidayHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.holidayService.Approve(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Public holiday approved successfully", nil)
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.holidayService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, ph := range holidays {
		result = append(result, holiday.ToHolidayResponse(ph))
	}
	response.Success(w, result)
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &HolidayHandlerImpl{holidayService: holidayService}
}
