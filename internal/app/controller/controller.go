// Package controller drives the ranking pages: it loads the dataset once per
// page view, derives the selectable years and re-renders on every selection.
package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/internal/render"
	"github.com/okian/circuito/pkg/logger"
	"github.com/okian/circuito/pkg/metrics"
)

// State of a controller.
type State int

// Controllers start Loading and become Ready after a successful load.
const (
	StateLoading State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "loading"
}

// Source provides the dataset of one page view.
type Source interface {
	Load(ctx context.Context) (ranking.Dataset, error)
	Path() string
}

// Surface is the display a controller draws into.
type Surface interface {
	render.Renderer
	RenderTopList(target string, rows ranking.Dataset)
	SetStatus(msg string)
	SetYearOptions(years []int, selected string)
}

// Controller is the state machine behind one page.
type Controller interface {
	Page() PageID
	// Init loads the dataset and renders the default year. It runs once.
	Init(ctx context.Context) error
	// Open is Init for a requested year; an empty year means the default.
	// When year cannot be shown the default year is rendered instead and the
	// selection error is returned.
	Open(ctx context.Context, year string) error
	// Select re-renders the already loaded dataset for year.
	Select(year string) error
	State() State
	Years() []int
	Selected() string
}

// pageController holds what the three pages share; draw is the page-specific
// render pass.
type pageController struct {
	page       PageID
	source     Source
	surface    Surface
	settings   Settings
	logger     logger.Logger
	selector   bool
	loadFailed string
	draw       func(year string) error

	state    State
	dataset  ranking.Dataset
	years    []int
	selected string
}

func (c *pageController) Page() PageID     { return c.page }
func (c *pageController) State() State     { return c.state }
func (c *pageController) Selected() string { return c.selected }

func (c *pageController) Years() []int {
	out := make([]int, len(c.years))
	copy(out, c.years)
	return out
}

func (c *pageController) Init(ctx context.Context) error {
	return c.Open(ctx, "")
}

func (c *pageController) Open(ctx context.Context, year string) error {
	if err := c.load(ctx); err != nil {
		return err
	}

	latest := strconv.Itoa(c.years[0])
	if year == "" || year == latest {
		return c.Select(latest)
	}
	err := c.Select(year)
	if err == nil || IsSoft(err) {
		return err
	}
	_ = c.Select(latest)
	return err
}

func (c *pageController) load(ctx context.Context) error {
	if c.state == StateReady {
		return ErrLoaded
	}

	ds, err := c.source.Load(ctx)
	if err != nil {
		c.logger.Error(ctx, "loading ranking failed",
			logger.String("page", string(c.page)),
			logger.String("path", c.source.Path()),
			logger.Error(err),
		)
		c.surface.SetStatus(fmt.Sprintf(c.loadFailed, c.source.Path()))
		return c.done(fmt.Errorf("%w: %w", ErrLoad, err))
	}
	if len(ds) == 0 {
		c.surface.SetStatus(msgEmptyDataset)
		return c.done(ErrEmptyDataset)
	}
	years := ranking.UniqueYears(ds)
	if len(years) == 0 {
		c.surface.SetStatus(msgNoYears)
		return c.done(ErrNoYears)
	}

	c.dataset = ds
	c.years = years
	c.state = StateReady
	c.logger.Debug(ctx, "page ready",
		logger.String("page", string(c.page)),
		logger.Int("records", len(ds)),
		logger.Int("years", len(years)),
	)
	return nil
}

func (c *pageController) Select(year string) error {
	if c.state != StateReady {
		return ErrNotReady
	}
	if !c.hasYear(year) {
		return fmt.Errorf("%w: %q", ErrUnknownYear, year)
	}
	if !c.selector && year != strconv.Itoa(c.years[0]) {
		return fmt.Errorf("%w: %s", ErrFixedYear, c.page)
	}

	c.selected = year
	if c.selector {
		c.surface.SetYearOptions(c.years, year)
	}
	return c.done(c.draw(year))
}

func (c *pageController) hasYear(year string) bool {
	for _, y := range c.years {
		if strconv.Itoa(y) == year {
			return true
		}
	}
	return false
}

func (c *pageController) done(err error) error {
	metrics.RecordPageRender(string(c.page), outcome(err))
	return err
}

func (c *pageController) ranked(year, category string) ranking.Dataset {
	return ranking.SortByScoreDescending(ranking.FilterByYearAndCategory(c.dataset, year, category))
}
