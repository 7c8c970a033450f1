package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/circuito/internal/app/build"
	"github.com/okian/circuito/pkg/logger"
)

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	cfg := d.cfg
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	b, err := build.New(d.registry, cfg.OutputDir, build.WithSiteTitle(cfg.SiteTitle))
	if err != nil {
		return err
	}
	rep, err := b.Run(ctx)
	if err != nil {
		logger.Get().Error(ctx, "build failed",
			logger.String("out", cfg.OutputDir),
			logger.Int("pages_written", len(rep.Pages)),
			logger.Error(err),
		)
		return err
	}
	return nil
}
