package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records template metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records one compile with its duration, output size and error status.
	RecordCompile(ctx context.Context, template string, duration time.Duration, sizeBytes int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles      metric.Int64Counter
	compileErrors metric.Int64Counter
	latency       metric.Float64Histogram
	outputSize    metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("strtmpl")

	compiles, err := meter.Int64Counter("strtmpl.compile.count",
		metric.WithDescription("Number of template compiles"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("strtmpl.compile.errors",
		metric.WithDescription("Number of failed template compiles"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("strtmpl.compile.latency_ms",
		metric.WithDescription("Template compile latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	outputSize, err := meter.Int64Histogram("strtmpl.output.size_bytes",
		metric.WithDescription("Compiled output size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:      compiles,
		compileErrors: compileErrors,
		latency:       latency,
		outputSize:    outputSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a compile.
func (m *otelMetrics) RecordCompile(ctx context.Context, template string, duration time.Duration, sizeBytes int, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := []attribute.KeyValue{
		attribute.String("template", template),
		attribute.Bool("success", err == nil),
	}

	m.compiles.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.compileErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		return
	}
	m.outputSize.Record(ctx, int64(sizeBytes), metric.WithAttributes(attrs...))
}
