// Package core holds the expense domain values shared by the store, the
// analysis engine and the API layer.
//
// This file contains amount coercion. The store keeps amounts as decimal
// text, so values can come back as numeric strings; coercion is the defined
// tolerance policy for them, not error handling.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceAmount parses a possibly-string amount into a decimal. Anything that
// does not parse as a finite number coerces to zero, so one malformed record
// can never abort a report.
//
// Examples:
//
//	CoerceAmount("19.99") -> 19.99
//	CoerceAmount("abc")   -> 0
//	CoerceAmount("")      -> 0
func CoerceAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
