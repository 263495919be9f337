package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Day   Granularity = "day"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// DefaultGranularity is applied when a caller omits the groupBy filter.
const DefaultGranularity = Month

// DateLayout is the wire format for calendar dates (no time-of-day semantics).
const DateLayout = "2006-01-02"

type (
	// Granularity selects the bucket size for time-series aggregation.
	Granularity string

	// ExpenseRecord is one expense as supplied by the store. OccurredOn is a
	// calendar date; a zero OccurredOn marks a record whose stored date could
	// not be parsed and which therefore contributes to no time bucket.
	ExpenseRecord struct {
		ID          uuid.UUID
		OwnerID     uuid.UUID
		Amount      decimal.Decimal
		Description string
		Category    string
		OccurredOn  time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidGranularity = errors.New("invalid granularity")
)

// Valid reports whether g is one of day, month or year.
func (g Granularity) Valid() bool {
	switch g {
	case Day, Month, Year:
		return true
	}
	return false
}

// BucketKey derives the time-series bucket key for t. All three formats are
// zero-padded and year-first, so lexical order on keys is chronological order.
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case Day:
		return t.Format("2006-01-02")
	case Year:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// Validate checks an incoming record before it is persisted. Limits follow
// the store schema: description up to 500 characters, category up to 100.
func (r ExpenseRecord) Validate() error {
	if r.OwnerID == uuid.Nil {
		return errors.New("missing owner")
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if len(r.Description) > 500 {
		return errors.New("description too long (max 500 characters)")
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if len(r.Category) > 100 {
		return errors.New("category too long (max 100 characters)")
	}
	if r.OccurredOn.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
