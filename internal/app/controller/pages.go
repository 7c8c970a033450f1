package controller

import (
	"fmt"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
)

// NewHome builds the home top-N controller, fixed to the most recent year.
func NewHome(source Source, surface Surface, settings Settings, lg logger.Logger) Controller {
	c := newPageController(PageHome, source, surface, settings, lg)
	c.loadFailed = msgLoadRankingFailed
	c.draw = func(year string) error {
		top := ranking.Top(c.ranked(year, c.settings.GeneralCategory), c.settings.HomeTopN)
		c.surface.RenderTopList(TargetHomeTop, top)
		if len(top) == 0 {
			c.surface.SetStatus(msgEmptyGeneral)
			return ErrEmptyFilter
		}
		c.surface.SetStatus(fmt.Sprintf(msgHomeStatus, c.settings.HomeTopN, year))
		return nil
	}
	return c
}

// NewGeneral builds the general ranking controller.
func NewGeneral(source Source, surface Surface, settings Settings, lg logger.Logger) Controller {
	c := newPageController(PageGeneral, source, surface, settings, lg)
	c.selector = true
	c.loadFailed = msgLoadRankingFailed
	c.draw = func(year string) error {
		c.surface.Render(TargetGeneral, c.ranked(year, c.settings.GeneralCategory))
		c.surface.SetStatus(fmt.Sprintf(msgGeneralStatus, year))
		return nil
	}
	return c
}

// NewMasters builds the per-style controller: one table per master category,
// each drawn into the target named after the category.
func NewMasters(source Source, surface Surface, settings Settings, lg logger.Logger) Controller {
	c := newPageController(PageMasters, source, surface, settings, lg)
	c.selector = true
	c.loadFailed = msgLoadDataFailed
	c.draw = func(year string) error {
		for _, category := range c.settings.MasterCategories {
			c.surface.Render(category, c.ranked(year, category))
		}
		c.surface.SetStatus(fmt.Sprintf(msgMastersStatus, year))
		return nil
	}
	return c
}

func newPageController(page PageID, source Source, surface Surface, settings Settings, lg logger.Logger) *pageController {
	if lg == nil {
		lg = logger.Named("controller")
	}
	return &pageController{
		page:     page,
		source:   source,
		surface:  surface,
		settings: settings.withDefaults(),
		logger:   lg,
		state:    StateLoading,
	}
}
