package strtmpl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Number is the set of types accepted by Num.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Primitive creates a slot that substitutes the supplied value as text.
//
// If a default is given, the slot may be left missing (nil, Missing, a nil
// pointer, or not supplied at all) and the default is used instead. Only the
// first default is used. Present values are never replaced by the default,
// including zero values such as 0 or false.
//
// Example:
//
//	port := strtmpl.Primitive(8080)
//	t := strtmpl.New("listening on :", port)
//	t.MustCompile()     // "listening on :8080"
//	t.MustCompile(9090) // "listening on :9090"
func Primitive[T any](def ...T) Slot[T] {
	p := Placeholder{
		kind:      KindPrimitive,
		label:     "primitive",
		valueType: reflect.TypeFor[T](),
	}
	if len(def) > 0 {
		p.def = def[0]
		p.hasDefault = true
	}
	return Slot[T]{p}
}

// Str creates a primitive string slot with an optional default.
//
// Example:
//
//	t := strtmpl.New("Hello ", strtmpl.Str("World"), "!")
//	t.MustCompile()        // "Hello World!"
//	t.MustCompile("Gopher") // "Hello Gopher!"
func Str(def ...string) Slot[string] {
	s := Primitive(def...)
	s.label = "str"
	return s
}

// Num creates a primitive numeric slot with an optional default.
func Num[N Number](def ...N) Slot[N] {
	s := Primitive(def...)
	s.label = "num"
	return s
}

// Computed creates a slot whose text is produced by fn from the supplied value.
// fn is called exactly once per compile. Computed panics if fn is nil.
//
// Example:
//
//	day := strtmpl.Computed(func(t time.Time) string { return t.Format("2006-01-02") })
//	strtmpl.New("today is ", day).MustCompile(time.Now())
func Computed[T any](fn func(T) string) Slot[T] {
	if fn == nil {
		panic("strtmpl: Computed called with nil function")
	}
	return computed("computed", func(v T) (string, error) {
		return fn(v), nil
	})
}

// ComputedErr is like Computed but fn may fail. The error is returned from
// Compile wrapped in a ResolveError.
func ComputedErr[T any](fn func(T) (string, error)) Slot[T] {
	if fn == nil {
		panic("strtmpl: ComputedErr called with nil function")
	}
	return computed("computed", fn)
}

// Labeled is like ComputedErr but reports label from Label and in
// MissingValueError and ResolveError. An empty label falls back to "computed".
//
// Example:
//
//	upper := strtmpl.Labeled("upper", func(s string) (string, error) {
//	    return strings.ToUpper(s), nil
//	})
func Labeled[T any](label string, fn func(T) (string, error)) Slot[T] {
	if fn == nil {
		panic("strtmpl: Labeled called with nil function")
	}
	if label == "" {
		label = "computed"
	}
	return computed(label, fn)
}

// Cond creates a slot that renders whenTrue or whenFalse depending on a bool.
//
// Example:
//
//	coin := strtmpl.Cond("heads", "tails")
//	strtmpl.New("coin: ", coin).MustCompile(true) // "coin: heads"
func Cond(whenTrue, whenFalse string) Slot[bool] {
	return computed("cond", func(b bool) (string, error) {
		if b {
			return whenTrue, nil
		}
		return whenFalse, nil
	})
}

// Tuple creates a slot that renders one of a fixed list of values by index.
//
// The list is treated as exhaustive: an index outside of it is a caller bug and
// is reported as an IndexError. Use Enum when the index may legitimately fall
// outside the list.
//
// Example:
//
//	type Gender int
//	g := strtmpl.Tuple[Gender]("male", "female", "other", "no answer")
//	strtmpl.New("gender: ", g).MustCompile(Gender(1)) // "gender: female"
func Tuple[I ~int](values ...string) Slot[I] {
	values = slices.Clone(values)
	return computed("tuple", func(idx I) (string, error) {
		i := int(idx)
		if i < 0 || i >= len(values) {
			return "", &IndexError{Index: i, Len: len(values)}
		}
		return values[i], nil
	})
}

// Enum creates a slot that renders values[index], or fallback when the index is
// out of range. The fallback is required because the list length is not known
// to the caller.
func Enum[I ~int](values []string, fallback string) Slot[I] {
	values = slices.Clone(values)
	return computed("enum", func(idx I) (string, error) {
		i := int(idx)
		if i < 0 || i >= len(values) {
			return fallback, nil
		}
		return values[i], nil
	})
}

// Record creates a slot that renders table[key].
//
// The table is expected to cover every key the caller will pass. A key that is
// absent renders as the empty string, which Compile rejects unless the template
// allows empty values.
//
// Example:
//
//	weather := strtmpl.Record(map[string]string{"sunny": "S", "rainy": "R"})
//	strtmpl.New(weather).MustCompile("sunny") // "S"
func Record[K comparable](table map[K]string) Slot[K] {
	table = maps.Clone(table)
	return computed("record", func(key K) (string, error) {
		return table[key], nil
	})
}

// Joined creates a slot that joins a list of strings with sep.
func Joined(sep string) Slot[[]string] {
	return computed("joined", func(items []string) (string, error) {
		return strings.Join(items, sep), nil
	})
}

// Lines creates a slot that joins a list of strings with newlines.
//
// Example:
//
//	strtmpl.Lines().Resolve([]string{"a", "b", "c"}) // "a\nb\nc"
func Lines() Slot[[]string] {
	s := Joined("\n")
	s.label = "lines"
	return s
}

func computed[T any](label string, fn func(T) (string, error)) Slot[T] {
	return Slot[T]{Placeholder{
		kind:      KindComputed,
		label:     label,
		valueType: reflect.TypeFor[T](),
		resolve: func(v any) (string, error) {
			tv, _ := v.(T)
			return fn(tv)
		},
	}}
}
