package controller

import (
	"fmt"

	"github.com/okian/circuito/internal/render"
	"github.com/okian/circuito/pkg/logger"
)

// Factory builds a controller drawing into surface.
type Factory func(surface Surface) Controller

// Registry maps page ids to controller factories. Exactly one controller is
// built per page view.
type Registry struct {
	factories map[PageID]Factory
	order     []PageID
}

// Option applies a configuration option to the Registry.
type Option func(*registryOptions)

type registryOptions struct {
	logger   logger.Logger
	settings Settings
}

// WithLogger sets the logger handed to every controller.
func WithLogger(lg logger.Logger) Option {
	return func(o *registryOptions) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// WithSettings sets the category labels and home list size.
func WithSettings(s Settings) Option {
	return func(o *registryOptions) {
		o.settings = s
	}
}

// NewRegistry registers the home, general and masters pages over source.
func NewRegistry(source Source, opts ...Option) *Registry {
	o := registryOptions{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("controller")
	}

	r := &Registry{factories: make(map[PageID]Factory)}
	r.Register(PageHome, func(s Surface) Controller { return NewHome(source, s, o.settings, o.logger) })
	r.Register(PageGeneral, func(s Surface) Controller { return NewGeneral(source, s, o.settings, o.logger) })
	r.Register(PageMasters, func(s Surface) Controller { return NewMasters(source, s, o.settings, o.logger) })
	return r
}

// Register adds or replaces the factory of page.
func (r *Registry) Register(page PageID, f Factory) {
	if _, ok := r.factories[page]; !ok {
		r.order = append(r.order, page)
	}
	r.factories[page] = f
}

// New builds the controller of page.
func (r *Registry) New(page PageID, surface Surface) (Controller, error) {
	f, ok := r.factories[page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return f(surface), nil
}

// Pages lists registered pages in registration order.
func (r *Registry) Pages() []PageID {
	out := make([]PageID, len(r.order))
	copy(out, r.order)
	return out
}

// Nav lists the registered pages as navigation items.
func (r *Registry) Nav() []render.NavItem {
	nav := make([]render.NavItem, 0, len(r.order))
	for _, page := range r.order {
		nav = append(nav, render.NavItem{Page: string(page), Title: Title(page)})
	}
	return nav
}
