package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budget/internal/chart"
	"budget/internal/log"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
	"budget/internal/services"
	"budget/internal/session"
	appweb "budget/web"
)

// Chrome is the optional cosmetic layer around the page.
type Chrome struct {
	// Hide suppresses the default header, menu and footer and shows the
	// custom attribution footer instead.
	Hide       bool
	FooterText string
	FooterLink string
}

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Logger             *log.Logger
	Chrome             Chrome
	SurfaceRejections  bool
	RateLimitPerMinute int
	Chart              chart.Options
	// Templates overrides the embedded template tree (rooted so that
	// "templates/*.html" matches). Nil uses the embedded files.
	Templates fs.FS
}

type appMetrics struct {
	uptime time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	sessions  *session.Manager
	intake    *services.TransactionService
	logger    *log.Logger
	events    *log.StructuredLogger

	chrome            Chrome
	surfaceRejections bool
	chartOpts         chart.Options

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	appMetrics       appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, sessions *session.Manager, intake *services.TransactionService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if opts.Chart.Width <= 0 || opts.Chart.Height <= 0 {
		opts.Chart = chart.DefaultOptions()
	}

	mux := http.NewServeMux()
	detector := security.NewDetector()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		sessions:          sessions,
		intake:            intake,
		logger:            logger.WithComponent(log.ComponentHTTP),
		events:            log.NewStructuredLogger(logger),
		chrome:            opts.Chrome,
		surfaceRejections: opts.SurfaceRejections,
		chartOpts:         opts.Chart,
		rateLimiter:       ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		securityDetector:  detector,
		traceMiddleware:   trace.NewMiddleware(detector.ExtractClientIP),
		appMetrics:        appMetrics{uptime: time.Now()},
	}

	// Parse templates at startup; a nil set makes page handlers answer 500.
	var tfs fs.FS = appweb.TemplatesFS
	if opts.Templates != nil {
		tfs = opts.Templates
	}
	t, err := template.ParseFS(tfs, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.Handle("/", security.NoStore(http.HandlerFunc(s.handleIndex)))
	mux.Handle("/transactions", security.NoStore(http.HandlerFunc(s.handleCreateTransaction)))
	mux.Handle("/ui/summary", security.NoStore(http.HandlerFunc(s.handleSummary)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(detector.ExtractClientIP, s.onRateLimited, http.MethodPost)

	s.Handler = s.traceMiddleware.Middleware(
		log.Middleware(s.logger)(
			log.RequestIDMiddleware(trace.FromRequest)(
				detector.Middleware(
					headers.Middleware(
						limit(mux))))))

	return s
}

// Background returns the long-running tasks the server depends on. They stop
// when their context is cancelled.
func (s *Server) Background() []func(context.Context) error {
	return []func(context.Context) error{
		s.rateLimiter.Run,
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldRequestID, trace.FromRequest(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	NewHTMXResponse().
		Status(http.StatusTooManyRequests).
		TriggerErrorNotification("Too many submissions, please wait a minute.").
		BodyHTML(`<div class="error">Rate limit exceeded. Please try again later.</div>`).
		Write(w)
}
