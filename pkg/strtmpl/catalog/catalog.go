package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl"
	"github.com/randalmurphal/strtmpl/pkg/strtmpl/definition"
	"github.com/randalmurphal/strtmpl/pkg/strtmpl/observability"
	"github.com/randalmurphal/strtmpl/pkg/strtmpl/store"
)

// Sentinel errors for catalog lookups.
var (
	// ErrUnknownTemplate indicates no template is registered under a name.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrNotNamed indicates RenderNamed was called for a template without slot names.
	ErrNotNamed = errors.New("template slots are not named")
)

// Entry is a registered template with its metadata.
type Entry struct {
	Name        string
	Description string
	Template    *strtmpl.Template
	// Prepared is nil unless the template was registered with slot names.
	Prepared *strtmpl.Prepared
	// Source is the file or store the template came from, empty for code.
	Source string
}

// Catalog is a thread-safe registry of templates indexed by name.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry

	logger   *slog.Logger
	tmplOpts []strtmpl.Option
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger for definition loading. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithTemplateOptions sets options applied to every template built from a
// definition, after the definition name.
func WithTemplateOptions(opts ...strtmpl.Option) Option {
	return func(c *Catalog) {
		c.tmplOpts = append(c.tmplOpts, opts...)
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{entries: make(map[string]Entry)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds or replaces the template for name.
func (c *Catalog) Register(name string, t *strtmpl.Template) {
	c.put(Entry{Name: name, Template: t})
}

// RegisterPrepared adds or replaces a template whose slots are named.
func (c *Catalog) RegisterPrepared(name string, p *strtmpl.Prepared) {
	c.put(Entry{Name: name, Template: p.Template(), Prepared: p})
}

// RegisterDefinition builds def and registers it under def.Name.
func (c *Catalog) RegisterDefinition(def *definition.Definition) error {
	if def.Name == "" {
		return &definition.Error{Part: -1, Err: fmt.Errorf("%w: name is required", definition.ErrInvalid)}
	}

	tmpl, err := def.Build(c.tmplOpts...)
	if err != nil {
		return err
	}

	entry := Entry{
		Name:        def.Name,
		Description: def.Description,
		Template:    tmpl,
		Source:      def.Source,
	}
	if names := def.SlotNames(); names != nil {
		p, err := tmpl.Prepare(names...)
		if err != nil {
			return err
		}
		entry.Prepared = p
	}

	c.put(entry)
	return nil
}

func (c *Catalog) put(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Name] = e
}

// Get returns the template for name and whether it exists.
func (c *Catalog) Get(name string) (*strtmpl.Template, bool) {
	e, ok := c.Entry(name)
	return e.Template, ok
}

// MustGet returns the template for name, panicking if not found.
func (c *Catalog) MustGet(name string) *strtmpl.Template {
	t, ok := c.Get(name)
	if !ok {
		panic(fmt.Sprintf("catalog: template %q not found", name))
	}
	return t
}

// Entry returns the entry for name and whether it exists.
func (c *Catalog) Entry(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Has returns true if a template is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Entry(name)
	return ok
}

// Delete removes the template for name.
func (c *Catalog) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Names returns all registered names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Render compiles the named template with positional values.
func (c *Catalog) Render(name string, values ...any) (string, error) {
	return c.RenderContext(context.Background(), name, values...)
}

// RenderContext is Render with a context for tracing.
func (c *Catalog) RenderContext(ctx context.Context, name string, values ...any) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t.CompileContext(ctx, values...)
}

// RenderNamed compiles the named template from a map of slot names to values.
// It returns ErrNotNamed if the template was registered without slot names.
func (c *Catalog) RenderNamed(name string, values map[string]any) (string, error) {
	e, ok := c.Entry(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if e.Prepared == nil {
		return "", fmt.Errorf("%w: %q", ErrNotNamed, name)
	}
	return e.Prepared.Compile(values)
}

// Search returns the names of templates whose name or description fuzzy
// matches query, best match first. An empty query returns all names.
func (c *Catalog) Search(query string) []string {
	if query == "" {
		return c.Names()
	}

	c.mu.RLock()
	entries := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	c.mu.RUnlock()

	// stable input order keeps equal scores deterministic
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	searchStrings := make([]string, len(entries))
	for i, e := range entries {
		searchStrings[i] = e.Name
		if e.Description != "" {
			searchStrings[i] += " " + e.Description
		}
	}

	matches := fuzzy.Find(query, searchStrings)

	results := make([]string, 0, len(matches))
	for _, match := range matches {
		results = append(results, entries[match.Index].Name)
	}
	return results
}

// LoadDir registers every definition file in dir.
// It returns the number registered; rejected files are logged and their
// errors joined into the returned error.
func (c *Catalog) LoadDir(dir string) (int, error) {
	defs, loadErr := definition.LoadDir(dir, c.logger)

	errs := []error{loadErr}
	loaded := 0
	for _, def := range defs {
		if err := c.RegisterDefinition(def); err != nil {
			observability.LogDefinitionError(c.logger, def.Name, def.Source, err)
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	return loaded, errors.Join(errs...)
}

// LoadStore registers every definition held in s. Documents are parsed
// as YAML (JSON is accepted); a document without a name takes its store key.
func (c *Catalog) LoadStore(s store.Store) (int, error) {
	infos, err := s.List()
	if err != nil {
		return 0, fmt.Errorf("list definitions: %w", err)
	}

	var errs []error
	loaded := 0
	for _, info := range infos {
		source := "store:" + info.ID
		if err := c.loadStored(s, info.Name, source); err != nil {
			observability.LogDefinitionError(c.logger, info.Name, source, err)
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	return loaded, errors.Join(errs...)
}

func (c *Catalog) loadStored(s store.Store, name, source string) error {
	data, err := s.Load(name)
	if err != nil {
		return err
	}

	def, err := definition.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = name
	}
	def.Source = source

	if err := c.RegisterDefinition(def); err != nil {
		return err
	}
	observability.LogDefinitionLoaded(c.logger, def.Name, source, len(def.Slots()))
	return nil
}

// Publish saves def to s and registers it.
// Nothing is registered if the definition is invalid or the save fails.
func (c *Catalog) Publish(s store.Store, def *definition.Definition) (store.Info, error) {
	if def.Name == "" {
		return store.Info{}, &definition.Error{Part: -1, Err: fmt.Errorf("%w: name is required", definition.ErrInvalid)}
	}
	if err := def.Validate(); err != nil {
		return store.Info{}, err
	}

	data, err := def.Marshal()
	if err != nil {
		return store.Info{}, fmt.Errorf("encode definition: %w", err)
	}

	info, err := s.Save(def.Name, data)
	if err != nil {
		return store.Info{}, err
	}

	published := *def
	published.Source = "store:" + info.ID
	if err := c.RegisterDefinition(&published); err != nil {
		return store.Info{}, err
	}
	return info, nil
}
