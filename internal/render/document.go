package render

import (
	"strconv"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/metrics"
)

// Renderer draws a ranking table into a named target, replacing whatever the
// target held before.
type Renderer interface {
	Render(target string, rows ranking.Dataset)
}

// YearOption is one entry of the year selector.
type YearOption struct {
	Year     int
	Selected bool
}

// Document is a headless display surface. Controllers draw into it and the
// HTML writer turns it into a page.
type Document struct {
	Page   string
	Status string
	Years  []YearOption

	tables  map[string]Table
	lists   map[string][]TopEntry
	targets []string
}

// NewDocument creates an empty surface for page.
func NewDocument(page string) *Document {
	return &Document{
		Page:   page,
		tables: make(map[string]Table),
		lists:  make(map[string][]TopEntry),
	}
}

// Render replaces target with a table built from rows.
func (d *Document) Render(target string, rows ranking.Dataset) {
	t := BuildTable(rows)
	d.touch(target)
	delete(d.lists, target)
	d.tables[target] = t
	metrics.RecordTableRendered(t.Empty())
}

// RenderTopList replaces target with the compact top list.
func (d *Document) RenderTopList(target string, rows ranking.Dataset) {
	d.touch(target)
	delete(d.tables, target)
	d.lists[target] = BuildTopList(rows)
}

// SetStatus sets the status line shown above the content.
func (d *Document) SetStatus(msg string) { d.Status = msg }

// SetYearOptions fills the year selector.
func (d *Document) SetYearOptions(years []int, selected string) {
	d.Years = make([]YearOption, len(years))
	for i, y := range years {
		d.Years[i] = YearOption{Year: y, Selected: strconv.Itoa(y) == selected}
	}
}

// SelectedYear returns the selected year option, or 0.
func (d *Document) SelectedYear() int {
	for _, y := range d.Years {
		if y.Selected {
			return y.Year
		}
	}
	return 0
}

// Clear drops every rendered target, keeping the page id.
func (d *Document) Clear() {
	d.Status = ""
	d.Years = nil
	d.tables = make(map[string]Table)
	d.lists = make(map[string][]TopEntry)
	d.targets = nil
}

// Table returns the table rendered into target.
func (d *Document) Table(target string) (Table, bool) {
	t, ok := d.tables[target]
	return t, ok
}

// TopList returns the list rendered into target.
func (d *Document) TopList(target string) ([]TopEntry, bool) {
	l, ok := d.lists[target]
	return l, ok
}

// Targets lists rendered targets in first-render order.
func (d *Document) Targets() []string {
	out := make([]string, len(d.targets))
	copy(out, d.targets)
	return out
}

func (d *Document) touch(target string) {
	if _, ok := d.tables[target]; ok {
		return
	}
	if _, ok := d.lists[target]; ok {
		return
	}
	d.targets = append(d.targets, target)
}
