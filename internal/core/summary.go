package core

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Series is the per-day chart data; Dates and Sums are index-aligned.
type Series struct {
	Dates []string  `json:"dates"`
	Sums  []float64 `json:"sums"`
}

// Len returns the number of data points.
func (s Series) Len() int {
	return len(s.Dates)
}

// Aggregate sums transaction amounts per distinct date, ordered by
// ascending date text. Sums are accumulated in decimal to avoid float
// drift (0.1 + 0.2 sums to 0.3). NaN and infinite amounts add nothing
// to their date's sum.
func Aggregate(txs []Transaction) Series {
	byDate := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		sum := byDate[tx.Date]
		if !math.IsNaN(tx.Amount) && !math.IsInf(tx.Amount, 0) {
			sum = sum.Add(decimal.NewFromFloat(tx.Amount))
		}
		byDate[tx.Date] = sum
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	sums := make([]float64, len(dates))
	for i, d := range dates {
		sums[i] = byDate[d].InexactFloat64()
	}
	return Series{Dates: dates, Sums: sums}
}
