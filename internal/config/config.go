// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and environment variables on top of the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory the csv path is resolved against when no
	// base URL is set.
	DataDir string `koanf:"data_dir"`

	// DataPath is the relative location of the ranking csv.
	DataPath string `koanf:"data_path"`

	// DataBaseURL, when set, makes the csv be fetched over HTTP from
	// DataBaseURL + DataPath instead of the local directory.
	DataBaseURL string `koanf:"data_base_url"`

	// DataEncoding names the csv charset: utf-8, iso-8859-1 or windows-1252.
	DataEncoding string `koanf:"data_encoding"`

	// FetchTimeoutMS bounds a single csv fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	GeneralCategory  string   `koanf:"general_category"`
	MasterCategories []string `koanf:"master_categories"`

	// HomeTopN is the length of the home list.
	HomeTopN int `koanf:"home_top_n"`

	// SiteTitle is shown in every page title and header.
	SiteTitle string `koanf:"site_title"`

	// OutputDir is where the build command writes the static site.
	OutputDir string `koanf:"output_dir"`

	// Pages maps page ids to HTTP routes.
	Pages map[string]string `koanf:"pages"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8080",
		DataDir:         ".",
		DataPath:        "data/ranking.csv",
		DataEncoding:    "utf-8",
		FetchTimeoutMS:  10_000,
		GeneralCategory: "Geral",
		MasterCategories: []string{
			"Mestre das Alemãs",
			"Mestre das Americanas",
			"Mestre das Belgas",
			"Mestre das Inglesas",
			"Mestre das Cervejas de Especialidade",
		},
		HomeTopN:  3,
		SiteTitle: "Circuito Cervejeiro",
		OutputDir: "public",
		Pages: map[string]string{
			"home":          "/",
			"ranking-geral": "/ranking-geral",
			"mestres":       "/mestres",
		},
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
