package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)

	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	ArchiveEntry(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService ledger.Service
}

// GetBalance implements LedgerHandler. The date query parameter defaults to
// today.
func (h *LedgerHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	balance, err := h.ledgerService.GetBalanceAsOf(r.Context(), employeeID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ledger.BalanceResponse{
		EmployeeID:      employeeID,
		AsOf:            asOf.Format("2006-01-02"),
		AllowedLeaves:   balance.AllowedLeaves,
		ClosingLeaves:   balance.ClosingLeaves,
		RemainingLeaves: balance.RemainingLeaves,
	})
}

// GetLedger implements LedgerHandler.
func (h *LedgerHandlerImpl) GetLedger(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	entries, err := h.ledgerService.GetLedgerHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]ledger.EntryResponse, 0, len(entries))
	for _, en := range entries {
		result = append(result, ledger.ToEntryResponse(en))
	}
	response.Success(w, result)
}

// Recompute implements LedgerHandler. It is the administrative repair for an
// interrupted cascade: recomputation restarts from the given date.
func (h *LedgerHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var body struct {
		From string `json:"from"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	from, err := parseDate(body.From)
	if err != nil {
		response.BadRequest(w, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}

	if err := h.ledgerService.RecomputeFrom(r.Context(), employeeID, from); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ledger recomputed successfully", nil)
}

// UpdateEntry implements LedgerHandler. Only authored fields are accepted;
// the downstream chain is recomputed as part of the update.
func (h *LedgerHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	var body struct {
		EventDate       *string  `json:"event_date"`
		LeaveAdjustment *float64 `json:"leave_adjustment"`
		ApprovedLeaves  *float64 `json:"approved_leaves"`
		AbsentDays      *float64 `json:"absent_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := ledger.UpdateEntryRequest{
		ID:              entryID,
		LeaveAdjustment: body.LeaveAdjustment,
		ApprovedLeaves:  body.ApprovedLeaves,
		AbsentDays:      body.AbsentDays,
	}
	if body.EventDate != nil {
		eventDate, err := parseDate(*body.EventDate)
		if err != nil {
			response.BadRequest(w, "Invalid event_date, expected YYYY-MM-DD", nil)
			return
		}
		req.EventDate = &eventDate
	}

	entry, err := h.ledgerService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ledger entry updated successfully", ledger.ToEntryResponse(entry))
}

// DeleteEntry implements LedgerHandler.
func (h *LedgerHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.ledgerService.DeleteEntry(r.Context(), entryID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ledger entry deleted successfully", nil)
}

// ArchiveEntry implements LedgerHandler.
func (h *LedgerHandlerImpl) ArchiveEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.ledgerService.ArchiveEntry(r.Context(), entryID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ledger entry archived successfully", nil)
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func NewLedgerHandler(ledgerService ledger.Service) LedgerHandler {
	return &LedgerHandlerImpl{ledgerService: ledgerService}
}
