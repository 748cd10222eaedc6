package strtmpl

import (
	"context"
	"fmt"
	"slices"
)

// Prepared compiles a template from a name-to-value map instead of a
// positional list. Create with (*Template).Prepare.
//
// Prepared is immutable and safe for concurrent use.
type Prepared struct {
	t     *Template
	names []string
}

// Prepare names the slots in order so the template can be compiled from a map.
//
// Exactly one name per slot is required. Names may repeat: every slot sharing
// a name receives the same value. A name absent from the map is treated as a
// missing value for each of its slots.
//
// Example:
//
//	t := strtmpl.New("A: ", strtmpl.Str(), " B: ", strtmpl.Str(), " A: ", strtmpl.Str())
//	p, _ := t.Prepare("a", "b", "a")
//	p.Compile(map[string]any{"a": "X", "b": "Y"}) // "A: X B: Y A: X"
func (t *Template) Prepare(names ...string) (*Prepared, error) {
	if len(names) != len(t.placeholders) {
		return nil, &ArityError{Want: len(t.placeholders), Got: len(names)}
	}
	return &Prepared{t: t, names: slices.Clone(names)}, nil
}

// MustPrepare is like Prepare but panics on error.
func (t *Template) MustPrepare(names ...string) *Prepared {
	p, err := t.Prepare(names...)
	if err != nil {
		panic(fmt.Sprintf("strtmpl: %v", err))
	}
	return p
}

// Compile looks up each slot's name in values and compiles the template.
func (p *Prepared) Compile(values map[string]any) (string, error) {
	return p.CompileContext(context.Background(), values)
}

// CompileContext is like Compile but records the compile span as a child of
// the span in ctx.
func (p *Prepared) CompileContext(ctx context.Context, values map[string]any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	args := make([]any, len(p.names))
	for i, name := range p.names {
		if v, ok := values[name]; ok {
			args[i] = v
		}
	}
	return p.t.run(ctx, p.names, args)
}

// MustCompile is like Compile but panics on error.
func (p *Prepared) MustCompile(values map[string]any) string {
	out, err := p.Compile(values)
	if err != nil {
		panic(fmt.Sprintf("strtmpl: %v", err))
	}
	return out
}

// Func returns Compile as a plain function value.
func (p *Prepared) Func() func(map[string]any) (string, error) {
	return p.Compile
}

// Names returns the slot names in slot order, including repeats.
func (p *Prepared) Names() []string {
	return slices.Clone(p.names)
}

// Keys returns the distinct slot names in order of first appearance.
func (p *Prepared) Keys() []string {
	keys := make([]string, 0, len(p.names))
	seen := make(map[string]bool, len(p.names))
	for _, name := range p.names {
		if !seen[name] {
			seen[name] = true
			keys = append(keys, name)
		}
	}
	return keys
}

// Template returns the underlying template.
func (p *Prepared) Template() *Template {
	return p.t
}
