package core

import "github.com/shopspring/decimal"

// Amounts serialize as bare JSON numbers across the whole API surface.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Summary condenses the selected records to headline numbers and a
// human-readable label for the requested period.
type Summary struct {
	RecordCount   int             `json:"recordCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
	PeriodLabel   string          `json:"periodLabel"`
}

// CategoryAnalysis is one row of the per-category breakdown.
type CategoryAnalysis struct {
	Category          string          `json:"category"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Count             int             `json:"count"`
	PercentageOfTotal decimal.Decimal `json:"percentageOfTotal"`
	AverageAmount     decimal.Decimal `json:"averageAmount"`
}

// TimeSeriesPoint is one bucket of the time series. BucketKey sorts
// lexically, which is chronological for the day/month/year key formats.
type TimeSeriesPoint struct {
	BucketKey     string          `json:"bucketKey"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Count         int             `json:"count"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// Trends carries the period-over-period delta between the two most recent
// buckets and the dominant category of the selection.
type Trends struct {
	PeriodOverPeriodPercent decimal.Decimal `json:"periodOverPeriodPercent"`
	TopCategory             string          `json:"topCategory"`
	TopCategoryAmount       decimal.Decimal `json:"topCategoryAmount"`
}

// AnalysisReport is the assembled report. It is a value: built fresh per
// request, holds no reference back to the store, never mutated afterwards.
type AnalysisReport struct {
	Summary           Summary            `json:"summary"`
	CategoryBreakdown []CategoryAnalysis `json:"categoryBreakdown"`
	TimeSeries        []TimeSeriesPoint  `json:"timeSeries"`
	Trends            Trends             `json:"trends"`
}

// NoDataLabel replaces the period label whenever the selection is empty.
const NoDataLabel = "No data available"

// EmptyReport returns the canonical report for an empty selection,
// regardless of the filters that produced it.
func EmptyReport() AnalysisReport {
	return AnalysisReport{
		Summary: Summary{
			RecordCount:   0,
			TotalAmount:   decimal.Zero,
			AverageAmount: decimal.Zero,
			PeriodLabel:   NoDataLabel,
		},
		CategoryBreakdown: []CategoryAnalysis{},
		TimeSeries:        []TimeSeriesPoint{},
		Trends: Trends{
			PeriodOverPeriodPercent: decimal.Zero,
			TopCategory:             "",
			TopCategoryAmount:       decimal.Zero,
		},
	}
}
