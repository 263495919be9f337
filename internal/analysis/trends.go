package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

// ComputeTrends derives trend indicators from an already-computed time
// series and category breakdown. Feeding it the same aggregates that go into
// the report guarantees the trends agree with them.
//
// The period-over-period percent compares the last two buckets of whatever
// range was selected. When the previous bucket total is zero the percent is
// reported as zero; that masks a genuine jump from nothing, which is a known
// limitation carried over rather than silently reinterpreted.
func ComputeTrends(series []core.TimeSeriesPoint, breakdown []core.CategoryAnalysis) core.Trends {
	trends := core.Trends{
		PeriodOverPeriodPercent: decimal.Zero,
		TopCategory:             "",
		TopCategoryAmount:       decimal.Zero,
	}

	if len(series) >= 2 {
		latest := series[len(series)-1]
		previous := series[len(series)-2]
		if !previous.TotalAmount.IsZero() {
			trends.PeriodOverPeriodPercent = latest.TotalAmount.
				Sub(previous.TotalAmount).
				Div(previous.TotalAmount).
				Mul(hundred)
		}
	}

	if len(breakdown) > 0 {
		trends.TopCategory = breakdown[0].Category
		trends.TopCategoryAmount = breakdown[0].TotalAmount
	}

	return trends
}
