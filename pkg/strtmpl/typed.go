package strtmpl

import (
	"context"
	"reflect"
)

// Typed bindings give Compile a fixed, statically checked parameter list.
//
// BindN verifies once that the template has exactly N slots and that each type
// parameter fits the corresponding slot. A pointer type parameter makes the
// slot optional: a nil pointer is a missing value.
//
// Example:
//
//	t := strtmpl.New("Hello ", strtmpl.Str(), ", you are ", strtmpl.Num[int]())
//	greet, err := strtmpl.Bind2[string, int](t)
//	if err != nil {
//	    return err
//	}
//	greet.Compile("Alice", 18) // "Hello Alice, you are 18"

// bind checks that types match the template slots one to one.
func bind(t *Template, types ...reflect.Type) error {
	if len(types) != len(t.placeholders) {
		return &ArityError{Want: len(t.placeholders), Got: len(types)}
	}
	for i, typ := range types {
		want := t.placeholders[i].valueType
		if !compatible(typ, want) {
			return &ValueTypeError{Index: i, Want: want, Got: typ}
		}
	}
	return nil
}

// Template1 is a template bound to 1 typed value.
type Template1[A any] struct {
	t *Template
}

// Bind1 binds a 1-slot template to typed values.
func Bind1[A any](t *Template) (Template1[A], error) {
	if err := bind(t, reflect.TypeFor[A]()); err != nil {
		return Template1[A]{}, err
	}
	return Template1[A]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template1[A]) Compile(a A) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template1[A]) CompileContext(ctx context.Context, a A) (string, error) {
	return tn.t.CompileContext(ctx, a)
}

// Template returns the underlying template.
func (tn Template1[A]) Template() *Template {
	return tn.t
}

// Template2 is a template bound to 2 typed values.
type Template2[A, B any] struct {
	t *Template
}

// Bind2 binds a 2-slot template to typed values.
func Bind2[A, B any](t *Template) (Template2[A, B], error) {
	if err := bind(t, reflect.TypeFor[A](), reflect.TypeFor[B]()); err != nil {
		return Template2[A, B]{}, err
	}
	return Template2[A, B]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template2[A, B]) Compile(a A, b B) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a, b})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template2[A, B]) CompileContext(ctx context.Context, a A, b B) (string, error) {
	return tn.t.CompileContext(ctx, a, b)
}

// Template returns the underlying template.
func (tn Template2[A, B]) Template() *Template {
	return tn.t
}

// Template3 is a template bound to 3 typed values.
type Template3[A, B, C any] struct {
	t *Template
}

// Bind3 binds a 3-slot template to typed values.
func Bind3[A, B, C any](t *Template) (Template3[A, B, C], error) {
	if err := bind(t, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()); err != nil {
		return Template3[A, B, C]{}, err
	}
	return Template3[A, B, C]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template3[A, B, C]) Compile(a A, b B, c C) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a, b, c})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template3[A, B, C]) CompileContext(ctx context.Context, a A, b B, c C) (string, error) {
	return tn.t.CompileContext(ctx, a, b, c)
}

// Template returns the underlying template.
func (tn Template3[A, B, C]) Template() *Template {
	return tn.t
}

// Template4 is a template bound to 4 typed values.
type Template4[A, B, C, D any] struct {
	t *Template
}

// Bind4 binds a 4-slot template to typed values.
func Bind4[A, B, C, D any](t *Template) (Template4[A, B, C, D], error) {
	if err := bind(t, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()); err != nil {
		return Template4[A, B, C, D]{}, err
	}
	return Template4[A, B, C, D]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template4[A, B, C, D]) Compile(a A, b B, c C, d D) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a, b, c, d})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template4[A, B, C, D]) CompileContext(ctx context.Context, a A, b B, c C, d D) (string, error) {
	return tn.t.CompileContext(ctx, a, b, c, d)
}

// Template returns the underlying template.
func (tn Template4[A, B, C, D]) Template() *Template {
	return tn.t
}

// Template5 is a template bound to 5 typed values.
type Template5[A, B, C, D, E any] struct {
	t *Template
}

// Bind5 binds a 5-slot template to typed values.
func Bind5[A, B, C, D, E any](t *Template) (Template5[A, B, C, D, E], error) {
	if err := bind(t, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E]()); err != nil {
		return Template5[A, B, C, D, E]{}, err
	}
	return Template5[A, B, C, D, E]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template5[A, B, C, D, E]) Compile(a A, b B, c C, d D, e E) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a, b, c, d, e})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template5[A, B, C, D, E]) CompileContext(ctx context.Context, a A, b B, c C, d D, e E) (string, error) {
	return tn.t.CompileContext(ctx, a, b, c, d, e)
}

// Template returns the underlying template.
func (tn Template5[A, B, C, D, E]) Template() *Template {
	return tn.t
}

// Template6 is a template bound to 6 typed values.
type Template6[A, B, C, D, E, F any] struct {
	t *Template
}

// Bind6 binds a 6-slot template to typed values.
func Bind6[A, B, C, D, E, F any](t *Template) (Template6[A, B, C, D, E, F], error) {
	if err := bind(t, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F]()); err != nil {
		return Template6[A, B, C, D, E, F]{}, err
	}
	return Template6[A, B, C, D, E, F]{t: t}, nil
}

// Compile fills the slots with the given values.
func (tn Template6[A, B, C, D, E, F]) Compile(a A, b B, c C, d D, e E, f F) (string, error) {
	return tn.t.run(context.Background(), nil, []any{a, b, c, d, e, f})
}

// CompileContext is like Compile with a parent context for tracing.
func (tn Template6[A, B, C, D, E, F]) CompileContext(ctx context.Context, a A, b B, c C, d D, e E, f F) (string, error) {
	return tn.t.CompileContext(ctx, a, b, c, d, e, f)
}

// Template returns the underlying template.
func (tn Template6[A, B, C, D, E, F]) Template() *Template {
	return tn.t
}
