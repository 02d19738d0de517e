package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/session"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

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

	if s.sessions == nil || s.intake == nil {
		checks["sessions"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = map[string]interface{}{
			"active": s.sessions.Active(),
			"status": "ok",
		}
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	uptime := time.Since(s.appMetrics.uptime)

	var sessionMetrics session.Metrics
	if s.sessions != nil {
		sessionMetrics = s.sessions.GetMetrics()
	}
	var intakeMetrics services.Metrics
	if s.intake != nil {
		intakeMetrics = s.intake.GetMetrics()
	}

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_requests_in_flight Requests currently being served\n")
	fmt.Fprintf(w, "# TYPE http_requests_in_flight gauge\n")
	fmt.Fprintf(w, "http_requests_in_flight %d\n\n", traceMetrics.InFlight)

	fmt.Fprintf(w, "# HELP transactions_submitted_total Form submissions by outcome\n")
	fmt.Fprintf(w, "# TYPE transactions_submitted_total counter\n")
	fmt.Fprintf(w, "transactions_submitted_total{outcome=\"accepted\"} %d\n", intakeMetrics.Accepted)
	fmt.Fprintf(w, "transactions_submitted_total{outcome=\"ignored\"} %d\n", intakeMetrics.Ignored)
	fmt.Fprintf(w, "transactions_submitted_total{outcome=\"invalid\"} %d\n\n", intakeMetrics.Invalid)

	fmt.Fprintf(w, "# HELP sessions_active Live sessions\n")
	fmt.Fprintf(w, "# TYPE sessions_active gauge\n")
	fmt.Fprintf(w, "sessions_active %d\n\n", sessionMetrics.Active)

	fmt.Fprintf(w, "# HELP sessions_started_total Sessions created\n")
	fmt.Fprintf(w, "# TYPE sessions_started_total counter\n")
	fmt.Fprintf(w, "sessions_started_total %d\n\n", sessionMetrics.Started)

	fmt.Fprintf(w, "# HELP sessions_ended_total Sessions expired or evicted\n")
	fmt.Fprintf(w, "# TYPE sessions_ended_total counter\n")
	fmt.Fprintf(w, "sessions_ended_total %d\n\n", sessionMetrics.Ended)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", rateLimitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n\n", uptime.Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}
	if !s.templatesReady(w, r) {
		return
	}

	store, _ := s.sessions.Current(w, r)
	data := indexView{
		Kinds:      core.Kinds(),
		Categories: core.Categories(),
		Chrome:     s.chrome,
		Summary:    s.summaryFor(r, store),
	}
	switch ParseFlash(r.URL.Query()) {
	case FlashAdded:
		data.Flash, data.FlashClass = MsgAdded, "success"
	case FlashIgnored:
		if s.surfaceRejections {
			data.Flash, data.FlashClass = MsgIgnored, "warning"
		}
	}

	s.render(w, r, "index.html", data)
}

// handleSummary renders the summary partial for the caller's session.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}
	if !s.templatesReady(w, r) {
		return
	}
	store, _ := s.sessions.Current(w, r)
	s.render(w, r, "summary", s.summaryFor(r, store))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(w, r); resp != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Parse form error",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		resp.Write(w)
		return
	}

	// A session is only tracked once it holds an accepted transaction.
	store, live := s.sessions.Current(w, r)
	if !live {
		store = s.sessions.Pending()
	}
	res, err := s.intake.Record(r.Context(), store, ParseTransactionInput(r.PostForm))
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			log.FromContext(r.Context()).DebugContext(r.Context(), "Malformed submission",
				log.FieldError, err,
				"error_type", log.ErrorTypeValidation)
			UnprocessableEntityError("Invalid " + ve.Field).Write(w)
			return
		}
		s.events.LogError(r.Context(), "Failed to record transaction", err,
			log.ComponentIntake, log.OpCreate, log.NewFields().WithSession(store.ID()))
		InternalServerError("Error recording transaction").Write(w)
		return
	}

	if res.Accepted && !live {
		s.sessions.Start(w, r, store)
	}

	htmx := IsHTMX(r)
	if !res.Accepted {
		switch {
		case !htmx && s.surfaceRejections:
			http.Redirect(w, r, redirectTarget(FlashIgnored), http.StatusSeeOther)
		case !htmx:
			http.Redirect(w, r, redirectTarget(FlashNone), http.StatusSeeOther)
		case s.surfaceRejections:
			NewHTMXResponse().
				TriggerWarningNotification(MsgIgnored).
				BodyHTML(`<div class="warning">` + template.HTMLEscapeString(MsgIgnored) + `</div>`).
				Write(w)
		default:
			NewHTMXResponse().Status(http.StatusNoContent).Write(w)
		}
		return
	}

	if !htmx {
		http.Redirect(w, r, redirectTarget(FlashAdded), http.StatusSeeOther)
		return
	}
	NewHTMXResponse().
		TriggerTransactionCreated(res.Count).
		TriggerFormReset().
		TriggerSuccessNotification(MsgAdded).
		BodyHTML(`<div class="success">` + template.HTMLEscapeString(MsgAdded) + `</div>`).
		Write(w)
}

func (s *Server) templatesReady(w http.ResponseWriter, r *http.Request) bool {
	if s.templates != nil {
		return true
	}
	s.logger.ErrorContext(r.Context(), "Templates not loaded",
		log.FieldPath, r.URL.Path,
		"error_type", log.ErrorTypeConfiguration)
	http.Error(w, "templates not loaded", http.StatusInternalServerError)
	return false
}

// summaryFor recomputes the summary from the store on every call. A nil
// store is a visitor without a session and renders the empty state.
func (s *Server) summaryFor(r *http.Request, store *session.Store) summaryView {
	var (
		items []core.Transaction
		id    string
	)
	if store != nil {
		items, id = store.Snapshot(), store.ID()
	}
	view, sum, err := buildSummaryView(items, s.chartOpts)
	if err != nil {
		s.events.LogError(r.Context(), "Pie chart rendering failed", err,
			log.ComponentChart, log.OpRender, log.NewFields().WithSession(id))
	}
	s.logger.WithComponent(log.ComponentSummary).DebugContext(r.Context(), "Summary computed",
		log.FieldSessionID, id,
		log.FieldTransactions, sum.Count,
		log.FieldBalanceCents, sum.Balance.Cents)
	return view
}

// render executes name into a buffer so a failing template never leaves a
// half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			"error_type", log.ErrorTypeInternal,
			log.FieldTemplate, name)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
