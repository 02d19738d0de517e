package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// Middleware creates HTTP middleware that adds a logger to the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := NewContext(r.Context(), logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewContext returns a copy of ctx carrying logger
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// RequestIDMiddleware adds request ID to logger context
func RequestIDMiddleware(extractRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := FromContext(r.Context()).With(FieldRequestID, extractRequestID(r))
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), logger)))
		})
	}
}

// StructuredLogger provides domain-level log lines with a fixed field layout
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogTransactionRecorded logs an accepted submission
func (sl *StructuredLogger) LogTransactionRecorded(ctx context.Context, sessionID, kind, category string, amountCents int64, storeSize int) {
	fields := NewFields().
		WithSession(sessionID).
		WithTransaction(kind, category, amountCents).
		WithOperation(OpCreate).
		ToSlice()
	fields = append(fields, FieldTransactions, storeSize)

	sl.logger.WithComponent(ComponentIntake).InfoContext(ctx, "Transaction recorded", fields...)
}

// LogSubmissionIgnored logs a submission dropped by the intake rule
func (sl *StructuredLogger) LogSubmissionIgnored(ctx context.Context, sessionID, reason string, amountCents int64) {
	fields := NewFields().
		WithSession(sessionID).
		WithOperation(OpValidate).
		ToSlice()
	fields = append(fields, FieldReason, reason, FieldAmountCents, amountCents)

	sl.logger.WithComponent(ComponentIntake).DebugContext(ctx, "Submission ignored", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
