package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/David200308/expense-web/internal/core"
	"github.com/David200308/expense-web/internal/storage"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	in, err := parseCreateExpense(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.expenses.CreateExpense(r.Context(), owner, in)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Expense creation failed", "error", err, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(rec))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	records, err := s.expenses.ListExpenses(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense listing failed", "error", err, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponses(records))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.expenses.GetExpense(r.Context(), id, owner)
	if errors.Is(err, storage.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense lookup failed", "error", err, "id", id, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to get expense")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(rec))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := parseUpdateExpense(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.expenses.UpdateExpense(r.Context(), id, owner, in)
	if errors.Is(err, storage.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Expense update failed", "error", err, "id", id, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(rec))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id, owner); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Expense deletion failed", "error", err, "id", id, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidDate)
}
