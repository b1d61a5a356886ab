package http

import (
	"net/http"
	"time"

	"txdash/internal/core"
	"txdash/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports not ready while the initial load is running. A
// failed load still counts as ready: the page degrades to empty lists.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	st := s.dash.Snapshot()
	switch {
	case st.Loading:
		checks["data"] = "loading"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	case st.Err != nil:
		checks["data"] = "fetch_failed"
	default:
		checks["data"] = "ok"
	}
	checks["records"] = map[string]int{
		"customers":    len(st.Customers),
		"transactions": len(st.Transactions),
	}

	writeJSON(w, r, httpStatus, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex renders the full page: the spinner while loading, the
// dashboard afterwards.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("not found").Write(w)
		return
	}
	if !allowRead(w, r) {
		return
	}
	s.render(w, r, "index.html", s.page(r))
}

// handleDashboard renders the dashboard partial. While loading it renders
// the spinner again, which keeps polling.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	data := s.page(r)
	if data.Loading {
		s.render(w, r, "loading", data)
		return
	}
	NewHTMXResponse().
		TriggerDashboardLoaded(len(data.Customers), len(s.dash.Snapshot().Transactions)).
		ApplyHeaders(w)
	s.render(w, r, "dashboard", data)
}

// handleResults renders the table and chart for the current criteria.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	c := ParseCriteria(r.URL.Query())
	v := s.dash.View(c)
	s.logFilter(r, c, v)
	s.render(w, r, "results", newResultsData(r.Context(), v))
}

// handleAPIView returns the derived view as JSON.
func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	c := ParseCriteria(r.URL.Query())
	v := s.dash.View(c)
	s.logFilter(r, c, v)
	writeJSON(w, r, http.StatusOK, viewResponse{
		Loading: s.dash.Snapshot().Loading,
		Rows:    v.Rows,
		Series:  v.Series,
	})
}

func (s *Server) page(r *http.Request) pageData {
	st := s.dash.Snapshot()
	return newPageData(r.Context(), st, s.dash.View(ParseCriteria(r.URL.Query())))
}

func (s *Server) logFilter(r *http.Request, c core.Criteria, v core.View) {
	args := log.NewFields().WithOperation(log.OpFilter).ToSlice()
	if c.CustomerID != nil {
		args = append(args, log.FieldCustomerID, *c.CustomerID)
	}
	args = append(args,
		log.FieldNameFilter, c.Name,
		log.FieldAmtFilter, c.Amount,
		log.FieldCount, len(v.Rows))
	log.FromContext(r.Context()).DebugContext(r.Context(), "View derived", args...)
}
