package http

import (
	"context"
	"encoding/json"
	"net/http"

	"txdash/internal/core"
	"txdash/internal/dashboard"
	"txdash/internal/log"
)

// rowData is one rendered table row.
type rowData struct {
	ID       int
	Customer string
	Date     string
	Amount   float64
}

// resultsData feeds the results partial: the table and the chart.
type resultsData struct {
	Rows  []rowData
	Empty bool
	// DatesJSON and SumsJSON are read by the chart script from data
	// attributes; they are JSON arrays as text.
	DatesJSON string
	SumsJSON  string
	// APIURL links to the same view as JSON.
	APIURL string
}

// pageData feeds the full page and the dashboard partial.
type pageData struct {
	Loading   bool
	Customers []core.Customer
	Criteria  core.Criteria
	Results   resultsData
	// DashboardURL is polled by the spinner until loading finishes.
	DashboardURL string
}

func newResultsData(ctx context.Context, v core.View) resultsData {
	rows := make([]rowData, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, rowData{
			ID:       r.TransactionID,
			Customer: r.CustomerName,
			Date:     r.Date,
			Amount:   r.Amount,
		})
	}
	dates, sums := seriesJSON(ctx, v.Series)
	return resultsData{
		Rows:      rows,
		Empty:     v.Empty(),
		DatesJSON: dates,
		SumsJSON:  sums,
		APIURL:    withQuery("/api/view", v.Criteria),
	}
}

func newPageData(ctx context.Context, st dashboard.State, v core.View) pageData {
	return pageData{
		Loading:   st.Loading,
		Customers: st.Customers,
		Criteria:  v.Criteria,
		Results:   newResultsData(ctx, v),

		DashboardURL: withQuery("/ui/dashboard", v.Criteria),
	}
}

func withQuery(path string, c core.Criteria) string {
	if q := CriteriaQuery(c).Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// seriesJSON encodes the chart arrays. If either fails both come back
// empty so the arrays stay index-aligned.
func seriesJSON(ctx context.Context, s core.Series) (string, string) {
	dates, err := json.Marshal(s.Dates)
	if err == nil {
		var sums []byte
		if sums, err = json.Marshal(s.Sums); err == nil {
			return string(dates), string(sums)
		}
	}
	log.FromContext(ctx).ErrorContext(ctx, "Failed encoding chart series",
		log.NewFields().WithError(err, log.ErrorTypeInternal).ToSlice()...)
	return "[]", "[]"
}

// viewResponse is the JSON form of a derived view.
type viewResponse struct {
	Loading bool       `json:"loading"`
	Rows    []core.Row `json:"rows"`
	core.Series
}

// writeJSON encodes v before touching the response so an encoding
// failure can still answer 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	logger := log.FromContext(r.Context())
	b, err := json.Marshal(v)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed encoding JSON response",
			log.NewFields().WithError(err, log.ErrorTypeInternal).ToSlice()...)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		logger.WarnContext(r.Context(), "Failed writing JSON response",
			log.NewFields().WithError(err, log.ErrorTypeNetwork).ToSlice()...)
	}
}

// allowRead rejects anything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	MethodNotAllowedError("GET, HEAD").Write(w)
	return false
}
