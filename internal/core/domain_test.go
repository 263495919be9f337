package core

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestGranularityBucketKey(t *testing.T) {
	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		g    Granularity
		want string
	}{
		{Day, "2024-03-07"},
		{Month, "2024-03"},
		{Year, "2024"},
	}
	for _, tc := range cases {
		if got := tc.g.BucketKey(date); got != tc.want {
			t.Errorf("%s.BucketKey = %q, want %q", tc.g, got, tc.want)
		}
	}
}

func TestGranularityValid(t *testing.T) {
	for _, g := range []Granularity{Day, Month, Year} {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	for _, g := range []Granularity{"", "week", "Month", "daily"} {
		if g.Valid() {
			t.Errorf("%s should be invalid", g)
		}
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	valid := ExpenseRecord{
		OwnerID:     uuid.New(),
		Amount:      decimal.RequireFromString("25.50"),
		Description: "groceries",
		Category:    "Food",
		OccurredOn:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ExpenseRecord)
		want   error
	}{
		{"missing owner", func(r *ExpenseRecord) { r.OwnerID = uuid.Nil }, nil},
		{"zero amount", func(r *ExpenseRecord) { r.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(r *ExpenseRecord) { r.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{"empty description", func(r *ExpenseRecord) { r.Description = "  " }, ErrEmptyDescription},
		{"long description", func(r *ExpenseRecord) { r.Description = strings.Repeat("x", 501) }, nil},
		{"empty category", func(r *ExpenseRecord) { r.Category = "" }, ErrEmptyCategory},
		{"long category", func(r *ExpenseRecord) { r.Category = strings.Repeat("x", 101) }, nil},
		{"zero date", func(r *ExpenseRecord) { r.OccurredOn = time.Time{} }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			err := rec.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && err != tt.want {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmptyReport(t *testing.T) {
	r := EmptyReport()
	if r.Summary.RecordCount != 0 || !r.Summary.TotalAmount.IsZero() || !r.Summary.AverageAmount.IsZero() {
		t.Fatalf("unexpected summary: %+v", r.Summary)
	}
	if r.Summary.PeriodLabel != NoDataLabel {
		t.Fatalf("period label = %q", r.Summary.PeriodLabel)
	}
	if r.CategoryBreakdown == nil || len(r.CategoryBreakdown) != 0 {
		t.Fatalf("category breakdown should be empty, got %v", r.CategoryBreakdown)
	}
	if r.TimeSeries == nil || len(r.TimeSeries) != 0 {
		t.Fatalf("time series should be empty, got %v", r.TimeSeries)
	}
	if !r.Trends.PeriodOverPeriodPercent.IsZero() || r.Trends.TopCategory != "" || !r.Trends.TopCategoryAmount.IsZero() {
		t.Fatalf("unexpected trends: %+v", r.Trends)
	}
}
