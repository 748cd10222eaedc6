package strtmpl

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/observability"
)

// Compile fills the slots with values in slot order and returns the result.
//
// A value may be omitted (trailing values), nil, Missing or a nil pointer; the
// slot then uses its default. Non-nil pointers are dereferenced. Supplying more
// values than slots returns an ArityError.
//
// Example:
//
//	t := strtmpl.New(strtmpl.Str("Hello"), " ", strtmpl.Str())
//	t.Compile(nil, "World")  // "Hello World", nil
//	t.Compile("Hi", "World") // "Hi World", nil
//	t.Compile("Hi")          // "", *MissingValueError{Index: 1}
func (t *Template) Compile(values ...any) (string, error) {
	return t.run(context.Background(), nil, values)
}

// CompileContext is like Compile but records the compile span as a child of
// the span in ctx.
func (t *Template) CompileContext(ctx context.Context, values ...any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return t.run(ctx, nil, values)
}

// MustCompile is like Compile but panics on error.
//
// Use this for templates whose values are known to be complete.
func (t *Template) MustCompile(values ...any) string {
	out, err := t.Compile(values...)
	if err != nil {
		panic(fmt.Sprintf("strtmpl: %v", err))
	}
	return out
}

// run wraps render with logging, metrics and tracing.
func (t *Template) run(ctx context.Context, names []string, values []any) (string, error) {
	ctx, span := t.opts.spans.StartCompileSpan(ctx, t.id, t.opts.name)
	start := time.Now()

	out, err := t.render(ctx, names, values)

	elapsed := time.Since(start)
	t.opts.spans.EndSpanWithError(span, err)
	t.opts.metrics.RecordCompile(ctx, t.opts.name, elapsed, len(out), err)
	durationMs := float64(elapsed.Microseconds()) / 1000
	if err != nil {
		observability.LogCompileError(t.logger, err, durationMs)
	} else {
		observability.LogCompile(t.logger, len(t.placeholders), len(out), durationMs)
	}
	return out, err
}

// render walks segments and slots in lock-step.
func (t *Template) render(ctx context.Context, names []string, values []any) (string, error) {
	if len(values) > len(t.placeholders) {
		return "", &ArityError{Want: len(t.placeholders), Got: len(values)}
	}
	if len(t.placeholders) == 0 {
		return t.segments[0], nil
	}

	var b strings.Builder
	for i, seg := range t.segments {
		b.WriteString(seg)
		if i >= len(t.placeholders) {
			break
		}
		var v any
		if i < len(values) {
			v = values[i]
		}
		s, err := t.resolveSlot(ctx, i, nameAt(names, i), v)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// resolveSlot turns the value for slot i into text.
// Default substitution and resolver failures are recorded as span events.
func (t *Template) resolveSlot(ctx context.Context, i int, name string, v any) (string, error) {
	p := t.placeholders[i]

	val, present := normalize(v, p.valueType)
	if present {
		cv, ok := coerce(val, p.valueType)
		if !ok {
			return "", &ValueTypeError{Index: i, Name: name, Want: p.valueType, Got: reflect.TypeOf(val)}
		}
		val = cv
	}

	var out string
	switch p.kind {
	case KindComputed:
		if !present {
			return t.missing(i, name, p)
		}
		s, err := p.resolve(val)
		if err != nil {
			t.opts.spans.AddSpanEvent(ctx, "slot.resolve_failed",
				append(slotAttrs(i, name, p), attribute.String("error", err.Error()))...)
			return "", &ResolveError{Index: i, Name: name, Label: p.Label(), Err: err}
		}
		out = s
	default:
		if !present {
			if !p.hasDefault {
				return t.missing(i, name, p)
			}
			val = p.def
			t.opts.spans.AddSpanEvent(ctx, "slot.default", slotAttrs(i, name, p)...)
		}
		out = stringify(val)
	}

	if out == "" && !t.opts.allowEmpty {
		return "", &MissingValueError{Index: i, Name: name, Label: p.Label()}
	}
	return out, nil
}

// missing applies the template's MissingAction to slot i.
func (t *Template) missing(i int, name string, p Placeholder) (string, error) {
	switch t.opts.missingAction {
	case MissingEmpty:
		return "", nil
	case MissingKeep:
		if name != "" {
			return "${" + name + "}", nil
		}
		return "${" + strconv.Itoa(i) + "}", nil
	default:
		return "", &MissingValueError{Index: i, Name: name, Label: p.Label()}
	}
}

func slotAttrs(i int, name string, p Placeholder) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("slot.index", i),
		attribute.String("slot.label", p.Label()),
	}
	if name != "" {
		attrs = append(attrs, attribute.String("slot.name", name))
	}
	return attrs
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
