package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

// labelLayout formats the period label bounds. Fixed layout rather than a
// locale-dependent one so reports are byte-identical across environments.
const labelLayout = "Jan 2, 2006"

// Summarize reduces the selected records to count, total, average and a
// human-readable period label. Pure function over its inputs.
func Summarize(records []core.ExpenseRecord, start, end *time.Time) core.Summary {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}

	count := len(records)
	average := decimal.Zero
	if count > 0 {
		average = total.Div(decimal.NewFromInt(int64(count)))
	}

	return core.Summary{
		RecordCount:   count,
		TotalAmount:   total,
		AverageAmount: average,
		PeriodLabel:   periodLabel(count, start, end),
	}
}

func periodLabel(count int, start, end *time.Time) string {
	if count == 0 {
		return core.NoDataLabel
	}
	switch {
	case start != nil && end != nil:
		return start.Format(labelLayout) + " - " + end.Format(labelLayout)
	case start != nil:
		return "From " + start.Format(labelLayout)
	case end != nil:
		return "Until " + end.Format(labelLayout)
	default:
		return "All time"
	}
}
