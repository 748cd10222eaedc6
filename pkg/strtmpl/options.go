package strtmpl

import (
	"log/slog"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/observability"
)

// MissingAction specifies how a missing value without a default is handled.
type MissingAction int

const (
	// MissingError fails the compile with a MissingValueError.
	// This is the default behavior.
	MissingError MissingAction = iota

	// MissingEmpty renders the slot as an empty string.
	MissingEmpty

	// MissingKeep renders the slot as ${name}, or ${index} when the template
	// is compiled positionally.
	MissingKeep
)

// options holds template configuration.
type options struct {
	name          string
	missingAction MissingAction
	allowEmpty    bool
	logger        *slog.Logger
	metrics       observability.MetricsRecorder
	spans         observability.SpanManager
}

func defaultOptions() options {
	return options{
		missingAction: MissingError,
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
	}
}

// Option configures a Template. Options may be passed among the parts given
// to New, or applied later with (*Template).WithOptions.
type Option func(*options)

// WithName names the template. The name appears in logs, metrics and spans.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMissingAction sets how missing values without a default are handled.
//
// Default: MissingError
//
// Example:
//
//	t := strtmpl.New("Hello ", strtmpl.Str(), strtmpl.WithMissingAction(strtmpl.MissingKeep))
//	t.MustCompile() // "Hello ${0}"
func WithMissingAction(action MissingAction) Option {
	return func(o *options) {
		o.missingAction = action
	}
}

// WithAllowEmpty controls whether a slot may resolve to the empty string.
//
// Default: false (an empty slot is reported as a MissingValueError)
func WithAllowEmpty(allow bool) Option {
	return func(o *options) {
		o.allowEmpty = allow
	}
}

// WithLogger sets the logger for compile events. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics recorder. A nil recorder disables metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		o.metrics = m
	}
}

// WithTracing sets the span manager. A nil manager disables tracing.
func WithTracing(s observability.SpanManager) Option {
	return func(o *options) {
		if s == nil {
			s = observability.NoopSpanManager{}
		}
		o.spans = s
	}
}
