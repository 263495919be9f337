package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/David200308/expense-web/internal/core"
)

// RecordFinder supplies the raw record set for an owner inside a date
// interval. Records may come back in any order; the engine sorts.
type RecordFinder interface {
	FindRecords(ctx context.Context, ownerID uuid.UUID, interval Interval) ([]core.ExpenseRecord, error)
}

// Filters are the report parameters. Dates arrive already validated by the
// API layer; a nil bound means the bound was not given. An empty granularity
// falls back to monthly buckets.
type Filters struct {
	OwnerID     uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	Granularity core.Granularity
}

// Engine assembles analysis reports from the record store. Stateless between
// calls; safe for concurrent use.
type Engine struct {
	store RecordFinder
	now   func() time.Time
}

func NewEngine(store RecordFinder) *Engine {
	return &Engine{store: store, now: time.Now}
}

// GenerateReport resolves the date range, selects the owner's records and
// composes the full report. An empty selection yields the canonical empty
// report; a store failure propagates to the caller with no partial report.
func (e *Engine) GenerateReport(ctx context.Context, filters Filters) (core.AnalysisReport, error) {
	granularity := filters.Granularity
	if granularity == "" {
		granularity = core.DefaultGranularity
	}

	interval := ResolveRange(filters.StartDate, filters.EndDate, e.now())

	records, err := e.store.FindRecords(ctx, filters.OwnerID, interval)
	if err != nil {
		return core.AnalysisReport{}, fmt.Errorf("find records: %w", err)
	}
	if len(records) == 0 {
		return core.EmptyReport(), nil
	}

	// Work on a sorted copy; the caller's slice stays untouched.
	sorted := make([]core.ExpenseRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredOn.Before(sorted[j].OccurredOn)
	})

	breakdown := AggregateByCategory(sorted)
	series := AggregateByPeriod(sorted, granularity)

	return core.AnalysisReport{
		Summary:           Summarize(sorted, filters.StartDate, filters.EndDate),
		CategoryBreakdown: breakdown,
		TimeSeries:        series,
		Trends:            ComputeTrends(series, breakdown),
	}, nil
}
