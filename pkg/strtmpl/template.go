package strtmpl

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/observability"
)

// Template is an ordered list of literal segments and placeholder slots.
//
// A template always has exactly one more segment than slots: slot i sits
// between segments[i] and segments[i+1]. Templates are immutable and safe for
// concurrent use.
type Template struct {
	id           string
	segments     []string
	placeholders []Placeholder
	opts         options
	logger       *slog.Logger
}

// New builds a template from an ordered list of parts.
//
// Parts are interpreted as follows:
//   - string: appended to the current literal segment
//   - Placeholder or Slot: closes the current segment and adds a slot
//   - Option: configures the template
//   - nil: ignored
//   - anything else: stringified (fmt.Stringer or fmt.Sprint) and merged
//     into the current literal segment
//
// Example:
//
//	profile := strtmpl.New(
//	    "Name: ", strtmpl.Str(), "\n",
//	    "Age: ", strtmpl.Num[int](), "\n",
//	    "Rank: ", strtmpl.Cond("premium", "regular"), " user",
//	    strtmpl.WithName("profile"),
//	)
func New(parts ...any) *Template {
	var (
		segments     []string
		placeholders []Placeholder
		cur          strings.Builder
		opts         []Option
	)
	for _, part := range parts {
		switch p := part.(type) {
		case nil:
		case string:
			cur.WriteString(p)
		case slotter:
			segments = append(segments, cur.String())
			placeholders = append(placeholders, p.placeholder())
			cur.Reset()
		case Option:
			opts = append(opts, p)
		default:
			cur.WriteString(fmt.Sprint(p))
		}
	}
	segments = append(segments, cur.String())

	t := &Template{
		id:           uuid.NewString(),
		segments:     segments,
		placeholders: placeholders,
		opts:         defaultOptions(),
	}
	t.apply(opts)
	return t
}

// WithOptions returns a copy of the template with opts applied.
// The copy keeps the template ID; the receiver is not modified.
func (t *Template) WithOptions(opts ...Option) *Template {
	c := *t
	c.apply(opts)
	return &c
}

func (t *Template) apply(opts []Option) {
	for _, opt := range opts {
		opt(&t.opts)
	}
	t.logger = observability.EnrichLogger(t.opts.logger, t.id, t.opts.name)
}

// ID returns the unique identifier assigned at construction.
func (t *Template) ID() string {
	return t.id
}

// Name returns the template name set with WithName.
func (t *Template) Name() string {
	return t.opts.name
}

// Len returns the number of slots.
func (t *Template) Len() int {
	return len(t.placeholders)
}

// Segments returns a copy of the literal segments.
func (t *Template) Segments() []string {
	return slices.Clone(t.segments)
}

// Placeholders returns a copy of the slots in order.
func (t *Template) Placeholders() []Placeholder {
	return slices.Clone(t.placeholders)
}

// String renders the template with ${index} markers in place of slots.
func (t *Template) String() string {
	var b strings.Builder
	for i, seg := range t.segments {
		b.WriteString(seg)
		if i < len(t.placeholders) {
			fmt.Fprintf(&b, "${%d}", i)
		}
	}
	return b.String()
}
