package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

// AggregateByPeriod buckets records by the granularity's key format in a
// single pass and emits the series sorted ascending by bucket key. Records
// with a zero date (unparseable in the store) contribute to no bucket.
// Every other record lands in exactly one bucket.
func AggregateByPeriod(records []core.ExpenseRecord, granularity core.Granularity) []core.TimeSeriesPoint {
	buckets := make(map[string]*accumulator, 16)
	var order []string

	for _, r := range records {
		if r.OccurredOn.IsZero() {
			continue
		}
		key := granularity.BucketKey(r.OccurredOn)
		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{total: decimal.Zero}
			buckets[key] = acc
			order = append(order, key)
		}
		acc.total = acc.total.Add(r.Amount)
		acc.count++
	}

	out := make([]core.TimeSeriesPoint, 0, len(order))
	for _, key := range order {
		acc := buckets[key]
		out = append(out, core.TimeSeriesPoint{
			BucketKey:     key,
			TotalAmount:   acc.total,
			Count:         acc.count,
			AverageAmount: acc.total.Div(decimal.NewFromInt(int64(acc.count))),
		})
	}

	// Lexical order is chronological for the zero-padded, year-first keys.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BucketKey < out[j].BucketKey
	})
	return out
}
