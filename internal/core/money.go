// Package core provides the transaction data model and the pure
// filter and aggregation pipelines behind the dashboard.
//
// This file contains amount helpers: the textual form used by the
// amount filter and the currency form used for display.
package core

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// AmountText returns the shortest decimal text that round-trips to the
// amount.
//
// Examples:
//
//	AmountText(100)  -> "100"
//	AmountText(10.5) -> "10.5"
//	AmountText(-3)   -> "-3"
//	AmountText(+Inf) -> "+Inf"
func AmountText(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'g', -1, 64)
	}
	return decimal.NewFromFloat(amount).String()
}

// FormatCurrency formats an amount as US dollars with thousands
// separators and two decimals (e.g. "$1,234.50", "-$3.00").
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	rounded := decimal.NewFromFloat(amount).Round(2)
	neg := rounded.IsNegative()
	s := "$" + humanize.FormatFloat("#,###.##", rounded.Abs().InexactFloat64())
	if neg {
		return "-" + s
	}
	return s
}
