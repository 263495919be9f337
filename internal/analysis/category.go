package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

// accumulator collects a running total and count for one grouping key.
// Shared by the category and time-series passes.
type accumulator struct {
	total decimal.Decimal
	count int
}

var hundred = decimal.NewFromInt(100)

// AggregateByCategory groups records by category label in a single pass.
// Labels match by exact, case-sensitive string equality; no normalization.
// The result is sorted descending by total, ties keeping encounter order.
func AggregateByCategory(records []core.ExpenseRecord) []core.CategoryAnalysis {
	totals := make(map[string]*accumulator, 16)
	var order []string

	for _, r := range records {
		acc, ok := totals[r.Category]
		if !ok {
			acc = &accumulator{total: decimal.Zero}
			totals[r.Category] = acc
			order = append(order, r.Category)
		}
		acc.total = acc.total.Add(r.Amount)
		acc.count++
	}

	grandTotal := decimal.Zero
	for _, label := range order {
		grandTotal = grandTotal.Add(totals[label].total)
	}

	out := make([]core.CategoryAnalysis, 0, len(order))
	for _, label := range order {
		acc := totals[label]
		percentage := decimal.Zero
		if !grandTotal.IsZero() {
			percentage = acc.total.Div(grandTotal).Mul(hundred)
		}
		out = append(out, core.CategoryAnalysis{
			Category:          label,
			TotalAmount:       acc.total,
			Count:             acc.count,
			PercentageOfTotal: percentage,
			AverageAmount:     acc.total.Div(decimal.NewFromInt(int64(acc.count))),
		})
	}

	// Stable: equal totals keep their first-seen order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})
	return out
}
