// Package http provides the JSON API server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: caller identity, analysis filter parameters, and expense payloads.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/analysis"
	"github.com/David200308/expense-web/internal/core"
	"github.com/David200308/expense-web/internal/services"
)

// ErrMissingIdentity is returned when a request carries no usable caller identity.
var ErrMissingIdentity = errors.New("missing or invalid X-User-ID header")

// ownerFromRequest resolves the caller identity. The upstream gateway
// authenticates requests and forwards the user id in the X-User-ID header.
func ownerFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if raw == "" {
		return uuid.Nil, ErrMissingIdentity
	}

	owner, err := uuid.Parse(raw)
	if err != nil || owner == uuid.Nil {
		return uuid.Nil, ErrMissingIdentity
	}
	return owner, nil
}

// parseAnalysisFilters validates the analysis query parameters. Malformed
// dates or an unknown groupBy are rejected before any data is touched.
func parseAnalysisFilters(query url.Values, ownerID uuid.UUID) (analysis.Filters, error) {
	filters := analysis.Filters{OwnerID: ownerID}

	if v := strings.TrimSpace(query.Get("startDate")); v != "" {
		t, err := time.Parse(core.DateLayout, v)
		if err != nil {
			return analysis.Filters{}, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", v)
		}
		filters.StartDate = &t
	}
	if v := strings.TrimSpace(query.Get("endDate")); v != "" {
		t, err := time.Parse(core.DateLayout, v)
		if err != nil {
			return analysis.Filters{}, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", v)
		}
		filters.EndDate = &t
	}
	if v := strings.TrimSpace(query.Get("groupBy")); v != "" {
		g := core.Granularity(v)
		if !g.Valid() {
			return analysis.Filters{}, fmt.Errorf("invalid groupBy %q: expected day, month or year", v)
		}
		filters.Granularity = g
	}

	return filters, nil
}

type createExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

type updateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date"`
}

func parseCreateExpense(r *http.Request) (services.CreateExpenseInput, error) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return services.CreateExpenseInput{}, err
	}

	occurredOn, err := time.Parse(core.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return services.CreateExpenseInput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", req.Date)
	}

	return services.CreateExpenseInput{
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		OccurredOn:  occurredOn,
	}, nil
}

func parseUpdateExpense(r *http.Request) (services.UpdateExpenseInput, error) {
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return services.UpdateExpenseInput{}, err
	}

	in := services.UpdateExpenseInput{
		Amount: req.Amount,
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		in.Description = &desc
	}
	if req.Category != nil {
		cat := strings.TrimSpace(*req.Category)
		in.Category = &cat
	}
	if req.Date != nil {
		occurredOn, err := time.Parse(core.DateLayout, strings.TrimSpace(*req.Date))
		if err != nil {
			return services.UpdateExpenseInput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *req.Date)
		}
		in.OccurredOn = &occurredOn
	}

	return in, nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid expense id %q", r.PathValue("id"))
	}
	return id, nil
}
