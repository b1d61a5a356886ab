package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"txdash/internal/core"
	"txdash/internal/dashboard"
	"txdash/internal/log"
	"txdash/internal/metrics"
	"txdash/internal/middleware/security"
	"txdash/internal/middleware/trace"
	appweb "txdash/web"
)

// Dashboard is the session state the handlers render.
type Dashboard interface {
	Snapshot() dashboard.State
	View(c core.Criteria) core.View
}

type Server struct {
	http.Server
	templates *template.Template
	dash      Dashboard
	logger    *log.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	started   time.Time

	templatesFS    fs.FS
	staticFS       fs.FS
	trustedProxies []string
}

// Option customizes a Server.
type Option func(*Server)

func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records request metrics into m and serves g at /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithTemplatesFS replaces the embedded templates; the FS must hold
// templates/*.html.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(s *Server) { s.templatesFS = fsys }
}

// WithTrustedProxies adds networks whose forwarded headers are honoured
// when resolving the client address.
func WithTrustedProxies(cidrs []string) Option {
	return func(s *Server) { s.trustedProxies = cidrs }
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, dash Dashboard, opts ...Option) *Server {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		dash:        dash,
		logger:      log.Discard(),
		gatherer:    prometheus.NewRegistry(),
		started:     time.Now(),
		templatesFS: appweb.TemplatesFS,
		staticFS:    appweb.StaticFS,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentHTTP)

	// Parse templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"currency": core.FormatCurrency,
	}).ParseFS(s.templatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates",
			log.NewFields().WithError(err, log.ErrorTypeTemplate).ToSlice()...)
		t = nil
	}
	s.templates = t

	mux := http.NewServeMux()

	if sub, err := fs.Sub(s.staticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/view", s.handleAPIView)
	// UI partials
	mux.HandleFunc("/ui/dashboard", s.handleDashboard)
	mux.HandleFunc("/ui/results", s.handleResults)

	clientIP := security.NewClientIP()
	for _, cidr := range s.trustedProxies {
		if err := clientIP.AddTrustedProxy(cidr); err != nil {
			s.logger.Warn("Ignoring trusted proxy",
				log.NewFields().WithError(err, log.ErrorTypeConfiguration).ToSlice()...)
		}
	}
	tracer := trace.NewMiddleware(s.logger, clientIP.Extract, s.metrics)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = headers.Middleware(tracer.Middleware(mux))

	return s
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server",
		log.NewFields().WithOperation(log.OpShutdown).ToSlice()...)
	return s.Server.Shutdown(ctx)
}

// render executes a named template, answering 500 when it fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		InternalServerError("templates not loaded").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			append(log.NewFields().
				WithOperation(log.OpRender).
				WithError(err, log.ErrorTypeTemplate).
				ToSlice(), log.FieldTemplate, name)...)
	}
}
