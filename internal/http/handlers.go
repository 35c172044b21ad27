package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	applog "github.com/sarthak-sharmaa/Expense-tracker/internal/log"
)

// expenseRequest is the JSON body accepted by create and update.
type expenseRequest struct {
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	OwnerID     string     `json:"ownerId"`
	OwnerEmail  string     `json:"ownerEmail"`
}

// expenseResponse is the JSON shape returned for a single expense.
type expenseResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	OwnerID     string     `json:"ownerId"`
	OwnerEmail  string     `json:"ownerEmail"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toExpenseResponse(rec core.Record) expenseResponse {
	return expenseResponse{
		ID:          rec.ID,
		Description: rec.Description,
		Amount:      rec.Amount,
		Category:    string(rec.Category),
		Date:        rec.Date,
		OwnerID:     rec.Owner.ID,
		OwnerEmail:  rec.Owner.Email,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Expense Tracker API is running!",
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.store.List(r.Context(), owner)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List expenses failed",
			applog.FieldOwnerID, owner.ID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	out := make([]expenseResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toExpenseResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recordFromBody(w, r)
	if !ok {
		return
	}

	saved, err := s.store.Create(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Create expense failed",
			applog.FieldOwnerID, rec.Owner.ID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(saved))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id, owner)
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Get expense failed",
			applog.FieldRecordID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expense")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(rec))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recordFromBody(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := s.store.Update(r.Context(), id, rec.Owner, rec)
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Update expense failed",
			applog.FieldRecordID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.store.Delete(r.Context(), id, owner); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Expense not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "Delete expense failed",
			applog.FieldRecordID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// recordFromBody decodes and validates an expense request body. On failure it
// writes the error response and returns ok=false.
func (s *Server) recordFromBody(w http.ResponseWriter, r *http.Request) (core.Record, bool) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return core.Record{}, false
	}

	date, err := parseDate(req.Date, s.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return core.Record{}, false
	}

	rec := core.Record{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    core.Category(req.Category),
		Date:        date,
		Owner:       core.Owner{ID: req.OwnerID, Email: req.OwnerEmail},
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return core.Record{}, false
	}

	return rec, true
}
