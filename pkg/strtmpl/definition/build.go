package definition

import (
	"fmt"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl"
	"github.com/randalmurphal/strtmpl/pkg/strtmpl/sanitize"
)

// Build validates the definition and creates a template from it.
// The definition name becomes the template name; opts are applied after it.
func (d *Definition) Build(opts ...strtmpl.Option) (*strtmpl.Template, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	parts := make([]any, 0, len(d.Parts)+len(opts)+1)
	for _, p := range d.Parts {
		if p.Slot == nil {
			parts = append(parts, p.Text)
			continue
		}
		parts = append(parts, p.Slot.placeholder())
	}
	if d.Name != "" {
		parts = append(parts, strtmpl.WithName(d.Name))
	}
	for _, opt := range opts {
		parts = append(parts, opt)
	}

	return strtmpl.New(parts...), nil
}

// Prepare builds the template and binds the definition's slot names.
// It returns ErrNoNames if the definition names no slots.
func (d *Definition) Prepare(opts ...strtmpl.Option) (*strtmpl.Prepared, error) {
	tmpl, err := d.Build(opts...)
	if err != nil {
		return nil, err
	}

	names := d.SlotNames()
	if names == nil {
		if tmpl.Len() == 0 {
			return tmpl.Prepare()
		}
		return nil, &Error{Name: d.Name, Part: -1, Err: ErrNoNames}
	}
	return tmpl.Prepare(names...)
}

// typedDefault returns the converted default, if the slot has one.
func (s *SlotSpec) typedDefault() (any, bool) {
	if !s.HasDefault {
		return nil, false
	}
	v, err := s.defaultValue()
	return v, err == nil
}

// placeholder maps a validated slot to its factory.
func (s *SlotSpec) placeholder() strtmpl.Placeholder {
	switch s.Kind {
	case KindStr:
		if def, ok := s.typedDefault(); ok {
			return strtmpl.Str(def.(string)).Placeholder
		}
		return strtmpl.Str().Placeholder
	case KindNum:
		if def, ok := s.typedDefault(); ok {
			return strtmpl.Num(def.(float64)).Placeholder
		}
		return strtmpl.Num[float64]().Placeholder
	case KindInt:
		if def, ok := s.typedDefault(); ok {
			return strtmpl.Num(def.(int)).Placeholder
		}
		return strtmpl.Num[int]().Placeholder
	case KindBool:
		if def, ok := s.typedDefault(); ok {
			return strtmpl.Primitive(def.(bool)).Placeholder
		}
		return strtmpl.Primitive[bool]().Placeholder
	case KindAny:
		if s.HasDefault {
			return strtmpl.Primitive(s.Default).Placeholder
		}
		return strtmpl.Primitive[any]().Placeholder
	case KindCond:
		return strtmpl.Cond(s.Then, s.Else).Placeholder
	case KindTuple:
		return strtmpl.Tuple[int](s.Values...).Placeholder
	case KindEnum:
		return strtmpl.Enum[int](s.Values, s.Fallback).Placeholder
	case KindRecord:
		return strtmpl.Record(s.Table).Placeholder
	case KindLines:
		return strtmpl.Lines().Placeholder
	case KindJoined:
		return strtmpl.Joined(s.Separator).Placeholder
	case KindHTML:
		return sanitize.Strict().Placeholder
	}
	panic(fmt.Sprintf("definition: unvalidated slot kind %q", s.Kind))
}
