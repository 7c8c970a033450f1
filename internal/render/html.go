package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// ErrUnknownPage is returned when no template exists for a document's page.
var ErrUnknownPage = errors.New("no template for page")

// StaticFS exposes the embedded assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}

// NavItem is one entry of the site navigation.
type NavItem struct {
	Page  string
	Title string
}

type navLink struct {
	Title  string
	Href   string
	Active bool
}

type yearLink struct {
	Label    string
	Href     string
	Selected bool
}

type section struct {
	Target string
	Table  *Table
	List   []TopEntry
}

type pageView struct {
	Title     string
	SiteTitle string
	AssetBase string
	Status    string
	Nav       []navLink
	Years     []yearLink
	Sections  []section
}

// HTML writes documents as full pages using the embedded templates.
type HTML struct {
	tmpl      *template.Template
	links     Linker
	nav       []NavItem
	siteTitle string
	assetBase string
}

// HTMLOption applies a configuration option to the HTML writer.
type HTMLOption func(*HTML)

// WithSiteTitle sets the title shown in the header.
func WithSiteTitle(title string) HTMLOption {
	return func(h *HTML) {
		if title != "" {
			h.siteTitle = title
		}
	}
}

// WithAssetBase sets the prefix of the static asset links, e.g. "/static/".
func WithAssetBase(base string) HTMLOption {
	return func(h *HTML) {
		if base != "" {
			h.assetBase = base
		}
	}
}

// NewHTML parses the page templates.
func NewHTML(links Linker, nav []NavItem, opts ...HTMLOption) (*HTML, error) {
	funcMap := template.FuncMap{
		"medalClass": func(m Medal) string {
			if m == MedalNone {
				return ""
			}
			return "medal-" + string(m)
		},
		"hasMedal": func(m Medal) bool { return m != MedalNone },
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	h := &HTML{
		tmpl:      tmpl,
		links:     links,
		nav:       nav,
		siteTitle: "Circuito Cervejeiro",
		assetBase: "static/",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Write renders doc as a complete page.
func (h *HTML) Write(w io.Writer, doc *Document) error {
	name := doc.Page + ".html"
	if h.tmpl.Lookup(name) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPage, doc.Page)
	}
	return h.tmpl.ExecuteTemplate(w, name, h.view(doc))
}

func (h *HTML) view(doc *Document) pageView {
	v := pageView{
		SiteTitle: h.siteTitle,
		AssetBase: h.assetBase,
		Status:    doc.Status,
	}
	for _, n := range h.nav {
		if n.Page == doc.Page {
			v.Title = n.Title
		}
		v.Nav = append(v.Nav, navLink{
			Title:  n.Title,
			Href:   h.links.PageHref(n.Page),
			Active: n.Page == doc.Page,
		})
	}
	for _, y := range doc.Years {
		v.Years = append(v.Years, yearLink{
			Label:    strconv.Itoa(y.Year),
			Href:     h.links.YearHref(doc.Page, y.Year),
			Selected: y.Selected,
		})
	}
	for _, target := range doc.Targets() {
		s := section{Target: target}
		if t, ok := doc.Table(target); ok {
			s.Table = &t
		} else if l, ok := doc.TopList(target); ok {
			s.List = l
		}
		v.Sections = append(v.Sections, s)
	}
	return v
}
