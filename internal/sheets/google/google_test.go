package google

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

func TestRecordRow(t *testing.T) {
	rec := core.ExpenseRecord{
		ID:          uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		OwnerID:     uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		Amount:      decimal.RequireFromString("45.50"),
		Description: "Groceries",
		Category:    "Food",
		OccurredOn:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	row := recordRow(rec)

	want := []any{
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"6ba7b811-9dad-11d1-80b4-00c04fd430c8",
		"2024-03-15",
		"Food",
		"Groceries",
		"45.5",
	}

	if len(row) != len(want) {
		t.Fatalf("len(row) = %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestRowIndexOf(t *testing.T) {
	id := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	values := [][]any{
		{"id"}, // header
		{"other-id"},
		{},
		{" " + id + " "}, // stray whitespace from manual edits
		{"last-id"},
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"found with whitespace", id, 4},
		{"case insensitive", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", 4},
		{"not found", uuid.Nil.String(), -1},
		{"last row", "last-id", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowIndexOf(values, tt.target); got != tt.want {
				t.Errorf("rowIndexOf(%q) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestRowIndexOfEmpty(t *testing.T) {
	if got := rowIndexOf(nil, "anything"); got != -1 {
		t.Errorf("rowIndexOf(nil) = %d, want -1", got)
	}
}
