package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/circuito/internal/adapters/csvsource"
	"github.com/okian/circuito/internal/app/controller"
	"github.com/okian/circuito/internal/config"
	"github.com/okian/circuito/pkg/logger"
)

var (
	// Global flags
	dataPath string
	logLevel string

	// Build command flags
	outDir string

	rootCmd = &cobra.Command{
		Use:   "circuito",
		Short: "Serve or build the Circuito Cervejeiro ranking pages",
		Long: `circuito renders the circuit ranking csv as three pages: the home
top list, the general ranking and the masters by style. It either serves
them over HTTP, reloading the csv on every page view, or writes them once
as a static site.

Configuration comes from the YAML file named by CIRCUITO_CONFIG and from
CIRCUITO_* environment variables; flags override both.`,
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the ranking pages and the JSON API over HTTP",
		RunE:  runServe,
	}

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Write the ranking pages as a static site",
		Example: `  # Build into ./public from data/ranking.csv
  circuito build

  # Build from a published csv into a custom directory
  CIRCUITO_DATA_BASE_URL=https://circuito.example.com/ circuito build --out site`,
		RunE: runBuild,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Ranking csv path (overrides data_path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")

	buildCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides output_dir)")

	rootCmd.AddCommand(serveCmd, buildCmd)
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// deps are the components both commands share.
type deps struct {
	cfg      *config.Config
	source   *csvsource.Loader
	registry *controller.Registry
}

// setup loads configuration, initialises logging and wires the csv source
// into the page registry.
func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	fetcher, err := csvsource.NewFetcher(cfg.DataBaseURL, cfg.DataDir, cfg.FetchTimeout())
	if err != nil {
		return nil, err
	}
	loader, err := csvsource.NewLoader(fetcher, cfg.DataPath, csvsource.WithEncoding(cfg.DataEncoding))
	if err != nil {
		return nil, err
	}

	registry := controller.NewRegistry(loader, controller.WithSettings(controller.Settings{
		GeneralCategory:  cfg.GeneralCategory,
		MasterCategories: cfg.MasterCategories,
		HomeTopN:         cfg.HomeTopN,
	}))
	return &deps{cfg: cfg, source: loader, registry: registry}, nil
}
