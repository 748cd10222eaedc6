// Package observability provides logging, metrics and tracing for template
// compiles: structured logging via slog, metrics and spans via OpenTelemetry.
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds template context to a logger.
// Returns a new logger with template_id and, if set, template fields.
// Returns nil for a nil logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, t.ID(), "profile")
//	enriched.Debug("compiling") // includes template_id and template
func EnrichLogger(logger *slog.Logger, templateID, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	logger = logger.With(slog.String("template_id", templateID))
	if name != "" {
		logger = logger.With(slog.String("template", name))
	}
	return logger
}

// LogCompile logs a successful compile.
func LogCompile(logger *slog.Logger, slots, sizeBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template compiled",
		slog.Int("slots", slots),
		slog.Int("size_bytes", sizeBytes),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCompileError logs a failed compile.
func LogCompileError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("template compile failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDefinitionLoaded logs a template definition built from a document.
func LogDefinitionLoaded(logger *slog.Logger, name, source string, slots int) {
	if logger == nil {
		return
	}
	logger.Info("template definition loaded",
		slog.String("template", name),
		slog.String("source", source),
		slog.Int("slots", slots),
	)
}

// LogDefinitionError logs a definition that could not be built (non-fatal).
func LogDefinitionError(logger *slog.Logger, name, source string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template definition rejected",
		slog.String("template", name),
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}
