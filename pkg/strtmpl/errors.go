package strtmpl

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for compile failures. Use errors.Is to match them through
// the typed errors below.
var (
	// ErrMissingValue indicates a slot ended up without a usable value.
	ErrMissingValue = errors.New("missing value")

	// ErrArity indicates the number of values or names does not match the slot count.
	ErrArity = errors.New("wrong number of values")

	// ErrValueType indicates a value cannot fill a slot of its declared type.
	ErrValueType = errors.New("value type mismatch")

	// ErrIndexOutOfRange indicates a Tuple slot received an index outside its list.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// MissingValueError reports a slot that was missing with no default, or whose
// resolved text was empty.
type MissingValueError struct {
	// Index is the zero-based slot position.
	Index int
	// Name is the slot name when compiled through Prepare, otherwise empty.
	Name string
	// Label is the placeholder label ("str", "cond", ...).
	Label string
}

// Error implements the error interface.
func (e *MissingValueError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("missing value for slot %d (%s)", e.Index, e.Name)
	}
	return fmt.Sprintf("missing value for slot %d", e.Index)
}

// Unwrap returns ErrMissingValue for errors.Is support.
func (e *MissingValueError) Unwrap() error {
	return ErrMissingValue
}

// ArityError reports a value or name list of the wrong length.
type ArityError struct {
	// Want is the number of slots in the template.
	Want int
	// Got is the number supplied.
	Got int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("template has %d slots, got %d", e.Want, e.Got)
}

// Unwrap returns ErrArity for errors.Is support.
func (e *ArityError) Unwrap() error {
	return ErrArity
}

// ValueTypeError reports a value, or a bound type parameter, that does not fit
// the slot's value type.
type ValueTypeError struct {
	Index int
	Name  string
	Want  reflect.Type
	Got   reflect.Type
}

// Error implements the error interface.
func (e *ValueTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("slot %d (%s) expects %v, got %v", e.Index, e.Name, e.Want, e.Got)
	}
	return fmt.Sprintf("slot %d expects %v, got %v", e.Index, e.Want, e.Got)
}

// Unwrap returns ErrValueType for errors.Is support.
func (e *ValueTypeError) Unwrap() error {
	return ErrValueType
}

// IndexError is returned by Tuple slots for an index outside the list.
type IndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange for errors.Is support.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ResolveError wraps an error returned by a computed slot's resolver.
type ResolveError struct {
	Index int
	Name  string
	Label string
	Err   error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("slot %d (%s): %s: %v", e.Index, e.Name, e.Label, e.Err)
	}
	return fmt.Sprintf("slot %d: %s: %v", e.Index, e.Label, e.Err)
}

// Unwrap returns the resolver error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}
