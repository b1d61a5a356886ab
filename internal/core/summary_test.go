package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsPerDate(t *testing.T) {
	s := Aggregate([]Transaction{
		{Date: "2024-01-02", Amount: 10},
		{Date: "2024-01-01", Amount: 5},
		{Date: "2024-01-01", Amount: 7},
	})

	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, s.Dates)
	assert.Equal(t, []float64{12, 10}, s.Sums)
	assert.Equal(t, 2, s.Len())
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	require.NotNil(t, s.Dates)
	require.NotNil(t, s.Sums)
	assert.Empty(t, s.Dates)
	assert.Empty(t, s.Sums)
}

func TestAggregateExactDecimalSums(t *testing.T) {
	s := Aggregate([]Transaction{
		{Date: "2024-03-01", Amount: 0.1},
		{Date: "2024-03-01", Amount: 0.2},
	})
	assert.Equal(t, []float64{0.3}, s.Sums)
}

func TestAggregateSkipsNonFiniteAmounts(t *testing.T) {
	var s Series
	require.NotPanics(t, func() {
		s = Aggregate([]Transaction{
			{Date: "2024-03-01", Amount: math.Inf(1)},
			{Date: "2024-03-01", Amount: 4},
			{Date: "2024-03-02", Amount: math.NaN()},
		})
	})
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, s.Dates)
	assert.Equal(t, []float64{4, 0}, s.Sums)
}

func TestBuildViewNonFiniteAmountFilter(t *testing.T) {
	txs := []Transaction{
		{ID: 1, CustomerID: 1, Date: "2024-03-01", Amount: math.Inf(1)},
		{ID: 2, CustomerID: 1, Date: "2024-03-01", Amount: 12},
	}
	var v View
	require.NotPanics(t, func() {
		v = BuildView(nil, txs, Criteria{Amount: "1"})
	})
	require.Len(t, v.Rows, 1)
	assert.Equal(t, 2, v.Rows[0].TransactionID)
}

func TestBuildViewEndToEnd(t *testing.T) {
	customers := []Customer{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}
	txs := []Transaction{
		{ID: 1, CustomerID: 1, Date: "2024-01-01", Amount: 100},
		{ID: 2, CustomerID: 2, Date: "2024-01-01", Amount: 50},
	}

	v := BuildView(customers, txs, Criteria{}.SelectCustomer(1))

	require.Len(t, v.Rows, 1)
	assert.Equal(t, Row{TransactionID: 1, CustomerName: "Alice", Date: "2024-01-01", Amount: 100}, v.Rows[0])
	assert.Equal(t, []string{"2024-01-01"}, v.Series.Dates)
	assert.Equal(t, []float64{100}, v.Series.Sums)
	assert.False(t, v.Empty())
}

func TestBuildViewResolvesUnknownCustomer(t *testing.T) {
	v := BuildView(nil, []Transaction{{ID: 7, CustomerID: 3, Date: "2024-02-02", Amount: 1}}, Criteria{})
	require.Len(t, v.Rows, 1)
	assert.Equal(t, UnknownCustomer, v.Rows[0].CustomerName)
}

func TestBuildViewNoMatches(t *testing.T) {
	v := BuildView(nil, nil, Criteria{Amount: "1"})
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Series.Len())
}
