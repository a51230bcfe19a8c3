package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// Constants for context and attribute keys
const (
	TraceIDKey = "trace_id"
	SpanIDKey  = "span_id"
	ModuleKey  = "module"
)

// programLevel allows dynamic adjustment of logging level
var programLevel = new(slog.LevelVar)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// filterAttr drops attributes that must never reach the logs. Credential
// material shows up under several names across the gate.
func filterAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "password", "secret", "token", "bearer", "credential", "cookie":
		return slog.Attr{}
	}
	return a
}

// NewLogger creates a new logger with the specified level
func NewLogger(level string) (*Logger, error) {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:       programLevel,
		TimeFormat:  time.RFC3339,
		ReplaceAttr: filterAttr,
	})

	if err := SetLogLevel(level); err != nil {
		return nil, err
	}

	logger := &Logger{
		Logger: slog.New(handler),
	}

	// Set as default logger
	slog.SetDefault(logger.Logger)

	return logger, nil
}

// SetLogLevel sets the logging level
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		programLevel.Set(slog.LevelDebug)
	case "info":
		programLevel.Set(slog.LevelInfo)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "error":
		programLevel.Set(slog.LevelError)
	default:
		return fmt.Errorf("invalid log level: '%s'", level)
	}
	return nil
}

// With creates a new logger with the provided attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithModule creates a new logger with the module attribute
func (l *Logger) WithModule(module string) *Logger {
	return l.With(ModuleKey, module)
}

// WithTracing adds trace and span IDs to the logger
func (l *Logger) WithTracing(traceID string) *Logger {
	if strings.TrimSpace(traceID) == "" {
		traceID = NewTraceID()
	}
	return l.With(TraceIDKey, traceID, SpanIDKey, NewSpanID())
}

// NewTraceID generates a new trace ID
func NewTraceID() string {
	return uuid.NewString()
}

// NewSpanID generates a new span ID
func NewSpanID() string {
	return uuid.NewString()
}

// Context key type for logging context
type contextKey string

// Context keys
const (
	ctxLoggerKey  contextKey = "logger"
	ctxTraceIDKey contextKey = "traceID"
	ctxSpanIDKey  contextKey = "spanID"
)

// ContextWithLogger adds a logger to a context
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, logger)
}

// LoggerFromContext extracts a logger from a context
func LoggerFromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(ctxLoggerKey).(*Logger); ok {
		return logger
	}
	return nil
}

// GetTraceIDFromContext retrieves the trace ID from context
func GetTraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxTraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// ContextWithTraceID adds a trace ID to context
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxTraceIDKey, traceID)
}

// ContextWithSpanID adds a span ID to context
func ContextWithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, ctxSpanIDKey, spanID)
}

// Err returns a formatted error attribute for logging
func Err(err error) slog.Attr {
	return tint.Err(err)
}
