// Package build writes the ranking pages as a static site: one file per page
// for the default year and one per page and year for the selector to link to.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/circuito/internal/app/controller"
	"github.com/okian/circuito/internal/render"
	"github.com/okian/circuito/pkg/logger"
)

// Error constants.
var (
	ErrBuild  = errors.New("static build failed")
	ErrOutDir = errors.New("output directory not usable")
)

const (
	staticDir = "static"
	dirPerm   = 0o755
	filePerm  = 0o644
)

// Report lists what a build wrote, relative to the output directory.
type Report struct {
	Pages  []string
	Assets []string
}

// Builder renders every registered page into an output directory.
type Builder struct {
	registry *controller.Registry
	links    render.StaticLinks
	html     *render.HTML
	out      string
	logger   logger.Logger
}

// Option applies a configuration option to the Builder.
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

// New creates a builder writing into out. The home page becomes index.html.
func New(registry *controller.Registry, out string, opts ...Option) (*Builder, error) {
	if out == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOutDir)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("build")
	}

	links := render.StaticLinks{Index: string(controller.PageHome)}
	html, err := render.NewHTML(links, registry.Nav(),
		render.WithSiteTitle(o.siteTitle),
		render.WithAssetBase(staticDir+"/"),
	)
	if err != nil {
		return nil, err
	}
	return &Builder{registry: registry, links: links, html: html, out: out, logger: o.logger}, nil
}

// Run builds every page. Each page loads the csv once and is then re-rendered
// for every year it can select. A failed load aborts the build; empty data
// still produces pages carrying the status message.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	var rep Report
	if err := os.MkdirAll(b.out, dirPerm); err != nil {
		return rep, fmt.Errorf("%w: %w", ErrOutDir, err)
	}

	for _, page := range b.registry.Pages() {
		files, err := b.page(ctx, page)
		rep.Pages = append(rep.Pages, files...)
		if err != nil {
			return rep, fmt.Errorf("%w: %s: %w", ErrBuild, page, err)
		}
	}

	assets, err := b.copyAssets()
	rep.Assets = assets
	if err != nil {
		return rep, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	b.logger.Info(ctx, "static site written",
		logger.String("out", b.out),
		logger.Int("pages", len(rep.Pages)),
		logger.Int("assets", len(rep.Assets)),
	)
	return rep, nil
}

func (b *Builder) page(ctx context.Context, page controller.PageID) ([]string, error) {
	doc := render.NewDocument(string(page))
	ctrl, err := b.registry.New(page, doc)
	if err != nil {
		return nil, err
	}

	err = ctrl.Init(ctx)
	if err != nil && !controller.IsSoft(err) {
		return nil, err
	}
	if err != nil {
		b.logger.Warn(ctx, "page has no ranking data",
			logger.String("page", string(page)),
			logger.Error(err),
		)
	}

	var written []string
	name := b.links.PageHref(string(page))
	if err := b.write(name, doc); err != nil {
		return written, err
	}
	written = append(written, name)

	// pages without a selector only exist for their default year
	if len(doc.Years) == 0 {
		return written, nil
	}
	for _, year := range ctrl.Years() {
		if err := ctrl.Select(strconv.Itoa(year)); err != nil && !controller.IsSoft(err) {
			return written, err
		}
		name := b.links.YearHref(string(page), year)
		if err := b.write(name, doc); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

// write renders doc fully before touching the file.
func (b *Builder) write(name string, doc *render.Document) error {
	var buf bytes.Buffer
	if err := b.html.Write(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.out, name), buf.Bytes(), filePerm)
}

func (b *Builder) copyAssets() ([]string, error) {
	var copied []string
	src := render.StaticFS()
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(b.out, staticDir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, dirPerm)
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, filePerm); err != nil {
			return err
		}
		copied = append(copied, filepath.ToSlash(filepath.Join(staticDir, p)))
		return nil
	})
	return copied, err
}
