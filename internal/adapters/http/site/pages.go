// Package site serves the ranking pages over HTTP. Every request is one page
// view: a fresh controller loads the csv and renders into its own document.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/circuito/internal/adapters/csvsource"
	"github.com/okian/circuito/internal/adapters/http/api"
	"github.com/okian/circuito/internal/app/controller"
	"github.com/okian/circuito/internal/render"
	"github.com/okian/circuito/pkg/logger"
)

// Error constants
var (
	ErrNoRoute = errors.New("page has no route")
	ErrServe   = errors.New("page serve failed")
)

const (
	yearParam      = "ano"
	staticPrefix   = "/static/"
	msgUnknownYear = "Ano %s não encontrado no ranking."
)

// Handler renders the registered pages.
type Handler struct {
	registry *controller.Registry
	routes   map[string]string
	html     *render.HTML
	logger   logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*options)

type options struct {
	siteTitle string
	logger    logger.Logger
}

// WithSiteTitle sets the title shown in every page.
func WithSiteTitle(title string) Option {
	return func(o *options) { o.siteTitle = title }
}

// WithLogger sets a custom logger.
func WithLogger(lg logger.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// New builds the handler; routes maps every registered page id to its path.
func New(registry *controller.Registry, routes map[string]string, opts ...Option) (*Handler, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("site")
	}
	for _, page := range registry.Pages() {
		if routes[string(page)] == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoRoute, page)
		}
	}

	html, err := render.NewHTML(
		render.ServerLinks{Routes: routes},
		registry.Nav(),
		render.WithSiteTitle(o.siteTitle),
		render.WithAssetBase(staticPrefix),
	)
	if err != nil {
		return nil, err
	}
	return &Handler{registry: registry, routes: routes, html: html, logger: o.logger}, nil
}

// Register attaches the page routes and the static assets to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	for _, page := range h.registry.Pages() {
		route := h.routes[string(page)]
		mux.HandleFunc(route, api.MetricsMiddleware(h.page(page, route), "page_"+string(page)))
	}
	mux.Handle(staticPrefix, http.StripPrefix(staticPrefix, http.FileServerFS(render.StaticFS())))
}

func (h *Handler) page(id controller.PageID, route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		// "/" is also the mux fallback
		if r.URL.Path != route {
			http.NotFound(w, r)
			return
		}

		doc := render.NewDocument(string(id))
		ctrl, err := h.registry.New(id, doc)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		year := r.URL.Query().Get(yearParam)
		err = ctrl.Open(r.Context(), year)
		if errors.Is(err, controller.ErrUnknownYear) || errors.Is(err, controller.ErrFixedYear) {
			doc.SetStatus(fmt.Sprintf(msgUnknownYear, year))
		}

		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Warn(r.Context(), "page rendered with error",
				logger.String("page", string(id)),
				logger.String("request_id", api.RequestID(r.Context())),
				logger.Error(err),
			)
		}

		var buf bytes.Buffer
		if err := h.html.Write(&buf, doc); err != nil {
			h.logger.Error(r.Context(), "writing page failed",
				logger.String("page", string(id)),
				logger.Error(fmt.Errorf("%w: %w", ErrServe, err)),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = buf.WriteTo(w)
	}
}

// statusFor maps a controller outcome to the page status code. Empty results
// are still a successful page.
func statusFor(err error) int {
	switch {
	case err == nil, controller.IsSoft(err):
		return http.StatusOK
	case errors.Is(err, controller.ErrUnknownYear), errors.Is(err, controller.ErrFixedYear):
		return http.StatusNotFound
	case csvsource.IsFetchError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
