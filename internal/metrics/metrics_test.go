package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch("customers", 10*time.Millisecond, nil)
	m.ObserveFetch("customers", 10*time.Millisecond, errors.New("x"))
	m.ObserveFetch("transactions", 10*time.Millisecond, nil)

	if got := testutil.ToFloat64(m.Fetches.WithLabelValues("customers", "ok")); got != 1 {
		t.Fatalf("customers ok = %v", got)
	}
	if got := testutil.ToFloat64(m.Fetches.WithLabelValues("customers", "error")); got != 1 {
		t.Fatalf("customers error = %v", got)
	}
}

func TestSetRecordsAndViews(t *testing.T) {
	m := New()
	m.SetRecords(2, 7)
	m.ObserveView(true)
	m.ObserveView(false)
	m.ObserveView(false)

	if got := testutil.ToFloat64(m.Records.WithLabelValues("transactions")); got != 7 {
		t.Fatalf("transactions gauge = %v", got)
	}
	if got := testutil.ToFloat64(m.ViewCache.WithLabelValues("miss")); got != 2 {
		t.Fatalf("miss = %v", got)
	}
}

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	New().MustRegister(reg)

	var nilMetrics *Metrics
	nilMetrics.ObserveFetch("customers", time.Millisecond, nil)
	nilMetrics.SetRecords(1, 1)
	nilMetrics.ObserveView(true)
}
