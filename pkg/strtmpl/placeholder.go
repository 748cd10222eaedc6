package strtmpl

import (
	"fmt"
	"math"
	"reflect"
)

// Kind discriminates the placeholder variants.
type Kind int

const (
	// KindPrimitive substitutes the supplied value, or the slot default when
	// the value is missing.
	KindPrimitive Kind = iota

	// KindComputed passes the supplied value to a resolver function and
	// substitutes its result. Computed slots have no default.
	KindComputed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindComputed:
		return "computed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Placeholder describes how one substitution slot turns a value into a string.
//
// It is a closed union of two variants selected by Kind. Placeholders are
// created by the factory functions (Str, Num, Cond, Tuple, ...) and are
// immutable afterwards. The zero value is a primitive slot without a default
// that accepts any value.
type Placeholder struct {
	kind       Kind
	label      string
	valueType  reflect.Type
	def        any
	hasDefault bool
	resolve    func(any) (string, error)
}

// Kind returns the placeholder variant.
func (p Placeholder) Kind() Kind {
	return p.kind
}

// Label returns the name of the factory that built the placeholder
// ("str", "num", "cond", "tuple", ...).
func (p Placeholder) Label() string {
	if p.label == "" {
		return p.kind.String()
	}
	return p.label
}

// ValueType returns the type of value the slot accepts.
// A nil type means any value is accepted.
func (p Placeholder) ValueType() reflect.Type {
	return p.valueType
}

// Default returns the default value of a primitive slot and whether one is set.
// Computed slots never have a default.
func (p Placeholder) Default() (any, bool) {
	return p.def, p.hasDefault
}

func (p Placeholder) placeholder() Placeholder {
	return p
}

// slotter is implemented by Placeholder and, through embedding, by every Slot.
type slotter interface {
	placeholder() Placeholder
}

// Slot is a Placeholder whose accepted value type is known statically.
// All factory functions return a Slot; pass it to New like a Placeholder.
type Slot[T any] struct {
	Placeholder
}

// Resolve converts a single value the same way Compile would for this slot,
// without default substitution or empty-value checks.
//
// Example:
//
//	strtmpl.Cond("on", "off").Resolve(true) // "on", nil
func (s Slot[T]) Resolve(v T) (string, error) {
	if s.kind == KindComputed && s.resolve != nil {
		return s.resolve(v)
	}
	return stringify(v), nil
}

// missingValue is the type of Missing.
type missingValue struct{}

func (missingValue) String() string { return "<missing>" }

// Missing marks a value as absent, exactly like nil.
// Primitive slots fall back to their default; other slots report a MissingValueError.
var Missing = missingValue{}

// stringify renders a resolved value.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// normalize reports whether v is present and unwraps non-nil pointers.
// A pointer is kept as-is when the slot itself expects that pointer type.
func normalize(v any, want reflect.Type) (any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.(missingValue); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v, true
	}
	if rv.IsNil() {
		return nil, false
	}
	if want != nil && want.Kind() != reflect.Interface && rv.Type().AssignableTo(want) {
		return v, true
	}
	return rv.Elem().Interface(), true
}

// coerce converts v to the slot type. Numeric values convert only when the
// value survives unchanged (no sign flip, overflow or lost precision); named
// and unnamed types with the same underlying type convert freely.
func coerce(v any, want reflect.Type) (any, bool) {
	if want == nil {
		return v, true
	}
	rv := reflect.ValueOf(v)
	got := rv.Type()
	switch {
	case got == want:
		return v, true
	case got.AssignableTo(want):
		if want.Kind() == reflect.Interface {
			return v, true
		}
		return rv.Convert(want).Interface(), true
	case isNumeric(got.Kind()) && isNumeric(want.Kind()):
		return convertNumber(rv, want)
	case got.Kind() == want.Kind() && got.ConvertibleTo(want):
		return rv.Convert(want).Interface(), true
	}
	return nil, false
}

// convertNumber converts rv to the numeric type want, rejecting conversions
// that change the value.
func convertNumber(rv reflect.Value, want reflect.Type) (any, bool) {
	got := rv.Type()
	switch {
	case isSigned(got.Kind()) && isUnsigned(want.Kind()):
		if rv.Int() < 0 {
			return nil, false
		}
	case isUnsigned(got.Kind()) && isSigned(want.Kind()):
		if rv.Uint() > math.MaxInt64 {
			return nil, false
		}
	case isFloat(got.Kind()):
		f := rv.Float()
		if !isFloat(want.Kind()) && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, false
		}
		if isUnsigned(want.Kind()) && f < 0 {
			return nil, false
		}
	}

	cv := rv.Convert(want)
	if isFloat(got.Kind()) && isFloat(want.Kind()) {
		// narrowing may round but must not overflow
		if math.IsInf(cv.Float(), 0) && !math.IsInf(rv.Float(), 0) {
			return nil, false
		}
		return cv.Interface(), true
	}
	if cv.Convert(got).Interface() != rv.Interface() {
		return nil, false
	}
	return cv.Interface(), true
}

// compatible reports whether values of type got can fill a slot of type want.
// Pointers to a compatible type are accepted as optional values.
func compatible(got, want reflect.Type) bool {
	if want == nil {
		return true
	}
	if got.Kind() == reflect.Pointer && !got.AssignableTo(want) {
		got = got.Elem()
	}
	switch {
	case got.AssignableTo(want):
		return true
	case isNumeric(got.Kind()) && isNumeric(want.Kind()):
		return true
	case got.Kind() == want.Kind() && got.ConvertibleTo(want):
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
