package view

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
)

// Template builds a component for the given data.
// Filters are the registry's named value formatters.
type Template func(data map[string]any, filters Filters) templ.Component

// Filter formats a template value.
type Filter func(any) string

// Filters is a set of named filters.
type Filters map[string]Filter

// Apply runs the named filter on v. Unknown filters print v as is.
func (f Filters) Apply(name string, v any) string {
	if fn, ok := f[name]; ok {
		return fn(v)
	}
	return fmt.Sprint(v)
}

// Registry maps template names to templ components.
// It implements the application's template renderer.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	filters   Filters
}

// Option configures a Registry.
type Option func(*Registry)

// WithFilter registers a named filter.
func WithFilter(name string, fn Filter) Option {
	return func(r *Registry) {
		r.filters[name] = fn
	}
}

// WithTemplate registers a named template.
func WithTemplate(name string, t Template) Option {
	return func(r *Registry) {
		r.templates[name] = t
	}
}

// New creates a registry with the "datetime" and "markdown" filters preset.
func New(opts ...Option) *Registry {
	r := &Registry{
		templates: make(map[string]Template),
		filters: Filters{
			"datetime": TimeAgoFilter,
			"markdown": MarkdownFilter,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a template.
func (r *Registry) Register(name string, t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = t
}

// Names returns the registered template names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filters returns the registry's filters.
func (r *Registry) Filters() Filters {
	return r.filters
}

// Component returns the component for a template and data.
func (r *Registry) Component(name string, data map[string]any) (templ.Component, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t(data, r.filters), nil
}

// Render writes the named template with data to w.
func (r *Registry) Render(ctx context.Context, w io.Writer, name string, data map[string]any) error {
	c, err := r.Component(name, data)
	if err != nil {
		return err
	}
	if err := c.Render(ctx, w); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return nil
}
