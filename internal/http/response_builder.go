// This file implements the JSON response helpers shared by all handlers.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// expenseResponse is the wire shape of an expense record.
type expenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

func toExpenseResponse(rec core.ExpenseRecord) expenseResponse {
	return expenseResponse{
		ID:          rec.ID,
		Amount:      rec.Amount,
		Description: rec.Description,
		Category:    rec.Category,
		Date:        rec.OccurredOn.Format(core.DateLayout),
	}
}

func toExpenseResponses(records []core.ExpenseRecord) []expenseResponse {
	out := make([]expenseResponse, len(records))
	for i, rec := range records {
		out[i] = toExpenseResponse(rec)
	}
	return out
}
