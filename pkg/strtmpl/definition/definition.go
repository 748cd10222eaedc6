package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/config"
)

// Sentinel errors for definition parsing and validation.
var (
	// ErrInvalid indicates a malformed definition document.
	ErrInvalid = errors.New("invalid template definition")

	// ErrUnknownKind indicates a slot kind that has no factory.
	ErrUnknownKind = errors.New("unknown slot kind")

	// ErrNoNames indicates Prepare was called on a definition without slot names.
	ErrNoNames = errors.New("definition has no slot names")
)

// Slot kinds accepted in definitions.
const (
	KindStr    = "str"
	KindNum    = "num"
	KindInt    = "int"
	KindBool   = "bool"
	KindAny    = "any"
	KindCond   = "cond"
	KindTuple  = "tuple"
	KindEnum   = "enum"
	KindRecord = "record"
	KindLines  = "lines"
	KindJoined = "joined"
	KindHTML   = "html"
)

var knownKinds = []string{
	KindStr, KindNum, KindInt, KindBool, KindAny, KindCond,
	KindTuple, KindEnum, KindRecord, KindLines, KindJoined, KindHTML,
}

// Definition is a declarative template.
type Definition struct {
	Name        string
	Description string
	Parts       []Part
	// Names optionally names every slot in order, for Prepare.
	Names []string
	// Source is the file the definition was loaded from, if any.
	Source string
}

// Part is either literal text or a slot.
type Part struct {
	Text string
	Slot *SlotSpec
}

// SlotSpec describes one slot. Only the fields relevant to Kind are used.
type SlotSpec struct {
	Kind       string
	Name       string
	Default    any
	HasDefault bool
	Values     []string
	Fallback   string
	// HasFallback distinguishes an empty fallback from none.
	HasFallback bool
	Table       map[string]string
	Then        string
	Else        string
	Separator   string
}

// Error reports a problem with one part of a definition.
type Error struct {
	// Name is the definition name.
	Name string
	// Part is the zero-based part index, or -1 for document-level problems.
	Part int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Part < 0 {
		return fmt.Sprintf("definition %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("definition %q part %d: %v", e.Name, e.Part, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Parse decodes a YAML (or JSON) definition document.
func Parse(data []byte) (*Definition, error) {
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return FromConfig(cfg)
}

// FromJSON decodes a JSON definition document.
func FromJSON(data []byte) (*Definition, error) {
	cfg, err := config.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return FromConfig(cfg)
}

// FromFile loads a definition from a .yaml, .yml or .json file.
func FromFile(path string) (*Definition, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return nil, err
	}
	def, err := FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.Source = path
	return def, nil
}

// FromConfig reads a definition from decoded document data.
// The result is validated.
func FromConfig(cfg config.Config) (*Definition, error) {
	def := &Definition{
		Name:        cfg.String("name", ""),
		Description: cfg.String("description", ""),
		Names:       cfg.StringSlice("names", nil),
	}

	for i, raw := range cfg.Slice("parts") {
		part, err := parsePart(raw)
		if err != nil {
			return nil, &Error{Name: def.Name, Part: i, Err: err}
		}
		def.Parts = append(def.Parts, part)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func parsePart(raw any) (Part, error) {
	switch v := raw.(type) {
	case string:
		return Part{Text: v}, nil
	case map[string]any:
		cfg := config.New(v)
		slotCfg, isSlot := cfg.Sub("slot")
		if cfg.Has("text") && cfg.Has("slot") {
			return Part{}, fmt.Errorf("%w: part has both text and slot", ErrInvalid)
		}
		if isSlot {
			return Part{Slot: parseSlot(slotCfg)}, nil
		}
		if cfg.Has("slot") {
			// shorthand: slot: str
			if kind := cfg.String("slot", ""); kind != "" {
				return Part{Slot: &SlotSpec{Kind: kind}}, nil
			}
			return Part{}, fmt.Errorf("%w: slot must be a kind or a mapping", ErrInvalid)
		}
		if !cfg.Has("text") {
			return Part{}, fmt.Errorf("%w: part needs text or slot", ErrInvalid)
		}
		text, ok := cfg.Any("text", nil).(string)
		if !ok {
			return Part{}, fmt.Errorf("%w: text must be a string", ErrInvalid)
		}
		return Part{Text: text}, nil
	default:
		return Part{}, fmt.Errorf("%w: unexpected part %T", ErrInvalid, raw)
	}
}

func parseSlot(cfg config.Config) *SlotSpec {
	def := cfg.Any("default", nil)
	if n, ok := def.(json.Number); ok {
		def = numberValue(n)
	}

	spec := &SlotSpec{
		Kind:        cfg.String("kind", KindStr),
		Name:        cfg.String("name", ""),
		Default:     def,
		HasDefault:  cfg.Has("default"),
		Values:      cfg.StringSlice("values", nil),
		Fallback:    cfg.String("fallback", ""),
		HasFallback: cfg.Has("fallback"),
		Table:       cfg.StringMap("table", nil),
		Then:        cfg.String("then", ""),
		Else:        cfg.String("else", ""),
		Separator:   cfg.String("separator", ", "),
	}
	// carry the default as the kind's Go type; Validate reports a mismatch
	if v, err := spec.defaultValue(); err == nil && spec.HasDefault {
		spec.Default = v
	}
	return spec
}

// defaultValue returns Default converted to the Go type of the slot kind:
// string for str, float64 for num, int for int and bool for bool.
func (s *SlotSpec) defaultValue() (any, error) {
	cfg := config.New(map[string]any{"default": s.Default})

	switch s.Kind {
	case KindStr:
		if v, ok := s.Default.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: str default must be a string", ErrInvalid)
	case KindNum:
		if n, ok := cfg.Number("default"); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%w: num default must be a number", ErrInvalid)
	case KindInt:
		n, ok := cfg.Number("default")
		if !ok {
			return nil, fmt.Errorf("%w: int default must be a number", ErrInvalid)
		}
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("%w: int default must be whole", ErrInvalid)
		}
		return cfg.Int("default", int(n)), nil
	case KindBool:
		// Bool returns its fallback for non-bool values, so only a real bool
		// gives the same answer for both fallbacks.
		if b := cfg.Bool("default", false); b == cfg.Bool("default", true) {
			return b, nil
		}
		return nil, fmt.Errorf("%w: bool default must be true or false", ErrInvalid)
	}
	return s.Default, nil
}

// numberValue converts a JSON number to the int or float64 YAML would produce.
func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	f, _ := n.Float64()
	return f
}

// Slots returns the slot specs in order.
func (d *Definition) Slots() []*SlotSpec {
	var slots []*SlotSpec
	for _, p := range d.Parts {
		if p.Slot != nil {
			slots = append(slots, p.Slot)
		}
	}
	return slots
}

// SlotNames returns the names used by Prepare: the top-level names list if
// present, otherwise the per-slot names. It returns nil if neither is set.
func (d *Definition) SlotNames() []string {
	if len(d.Names) > 0 {
		return slices.Clone(d.Names)
	}
	slots := d.Slots()
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Name == "" {
			return nil
		}
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// Validate checks every slot for a known kind and the attributes it needs.
func (d *Definition) Validate() error {
	slots := 0
	named := 0
	for i, p := range d.Parts {
		if p.Slot == nil {
			continue
		}
		slots++
		if p.Slot.Name != "" {
			named++
		}
		if err := p.Slot.validate(); err != nil {
			return &Error{Name: d.Name, Part: i, Err: err}
		}
	}

	if len(d.Names) > 0 && len(d.Names) != slots {
		return &Error{Name: d.Name, Part: -1,
			Err: fmt.Errorf("%w: %d names for %d slots", ErrInvalid, len(d.Names), slots)}
	}
	if named != 0 && named != slots {
		return &Error{Name: d.Name, Part: -1,
			Err: fmt.Errorf("%w: %d of %d slots are named", ErrInvalid, named, slots)}
	}
	return nil
}

func (s *SlotSpec) validate() error {
	if !slices.Contains(knownKinds, s.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	if s.HasDefault && acceptsDefault(s.Kind) {
		if _, err := s.defaultValue(); err != nil {
			return err
		}
	}

	switch s.Kind {
	case KindCond:
		if s.Then == "" || s.Else == "" {
			return fmt.Errorf("%w: cond needs then and else", ErrInvalid)
		}
	case KindTuple:
		if len(s.Values) == 0 {
			return fmt.Errorf("%w: tuple needs values", ErrInvalid)
		}
	case KindEnum:
		if len(s.Values) == 0 {
			return fmt.Errorf("%w: enum needs values", ErrInvalid)
		}
		if !s.HasFallback {
			return fmt.Errorf("%w: enum needs a fallback", ErrInvalid)
		}
	case KindRecord:
		if len(s.Table) == 0 {
			return fmt.Errorf("%w: record needs a table of strings", ErrInvalid)
		}
	}

	if s.HasDefault && !acceptsDefault(s.Kind) {
		return fmt.Errorf("%w: %s slots cannot have a default", ErrInvalid, s.Kind)
	}
	return nil
}

func acceptsDefault(kind string) bool {
	switch kind {
	case KindStr, KindNum, KindInt, KindBool, KindAny:
		return true
	}
	return false
}

// Marshal encodes the definition as a YAML document that Parse accepts.
func (d *Definition) Marshal() ([]byte, error) {
	doc := map[string]any{"name": d.Name}
	if d.Description != "" {
		doc["description"] = d.Description
	}
	if len(d.Names) > 0 {
		doc["names"] = d.Names
	}

	parts := make([]any, 0, len(d.Parts))
	for _, p := range d.Parts {
		if p.Slot == nil {
			parts = append(parts, map[string]any{"text": p.Text})
			continue
		}
		parts = append(parts, map[string]any{"slot": p.Slot.toMap()})
	}
	doc["parts"] = parts

	return yaml.Marshal(doc)
}

func (s *SlotSpec) toMap() map[string]any {
	m := map[string]any{"kind": s.Kind}
	if s.Name != "" {
		m["name"] = s.Name
	}
	if s.HasDefault {
		m["default"] = s.Default
	}
	switch s.Kind {
	case KindTuple:
		m["values"] = s.Values
	case KindEnum:
		m["values"] = s.Values
		m["fallback"] = s.Fallback
	case KindRecord:
		m["table"] = s.Table
	case KindCond:
		m["then"] = s.Then
		m["else"] = s.Else
	case KindJoined:
		m["separator"] = s.Separator
	}
	return m
}
