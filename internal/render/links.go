package render

import (
	"net/url"
	"strconv"
)

// Linker builds the hrefs of the navigation and the year selector.
type Linker interface {
	PageHref(page string) string
	YearHref(page string, year int) string
}

// ServerLinks links to routes served over HTTP; the year travels in ?ano=.
type ServerLinks struct {
	Routes map[string]string
}

// PageHref returns the route of page.
func (l ServerLinks) PageHref(page string) string {
	if r, ok := l.Routes[page]; ok {
		return r
	}
	return "/"
}

// YearHref returns the route of page with the year query.
func (l ServerLinks) YearHref(page string, year int) string {
	q := url.Values{}
	q.Set("ano", strconv.Itoa(year))
	return l.PageHref(page) + "?" + q.Encode()
}

// StaticLinks links to files written by the static builder.
type StaticLinks struct {
	// Index is the page written as index.html.
	Index string
}

// PageHref returns the file name of page.
func (l StaticLinks) PageHref(page string) string {
	if page == l.Index {
		return "index.html"
	}
	return page + ".html"
}

// YearHref returns the file name of page for a year.
func (l StaticLinks) YearHref(page string, year int) string {
	return page + "-" + strconv.Itoa(year) + ".html"
}
