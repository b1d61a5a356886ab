package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"txdash/internal/core"
	"txdash/internal/log"
)

func bufferLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(log.Config{Handler: slog.NewJSONHandler(buf, nil)})
}

func TestNewResultsData_SeriesJSON(t *testing.T) {
	v := core.View{Series: core.Series{Dates: []string{"2024-01-01", "2024-01-02"}, Sums: []float64{12, 10.5}}}

	got := newResultsData(context.Background(), v)
	if got.DatesJSON != `["2024-01-01","2024-01-02"]` {
		t.Errorf("DatesJSON = %s", got.DatesJSON)
	}
	if got.SumsJSON != `[12,10.5]` {
		t.Errorf("SumsJSON = %s", got.SumsJSON)
	}
}

func TestNewResultsData_UnencodableSeriesStaysAligned(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.NewContext(context.Background(), bufferLogger(&buf))
	v := core.View{Series: core.Series{Dates: []string{"2024-01-01"}, Sums: []float64{math.NaN()}}}

	got := newResultsData(ctx, v)
	if got.DatesJSON != "[]" || got.SumsJSON != "[]" {
		t.Errorf("got dates=%s sums=%s, want both []", got.DatesJSON, got.SumsJSON)
	}
	if !strings.Contains(buf.String(), "Failed encoding chart series") {
		t.Errorf("expected encoding error to be logged: %s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusAccepted, map[string]int{"n": 1})

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["n"] != 1 {
		t.Errorf("body = %q, err = %v", rr.Body.String(), err)
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(log.NewContext(req.Context(), bufferLogger(&buf)))
	rr := httptest.NewRecorder()

	writeJSON(rr, req, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Errorf("expected error body, got %q", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "Failed encoding JSON response") {
		t.Errorf("expected encoding error to be logged: %s", buf.String())
	}
}
