package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "CIRCUITO_"
	envConfigFile = "CIRCUITO_CONFIG"
)

// requiredPages must each have a route.
var requiredPages = []string{"home", "ranking-geral", "mestres"}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CIRCUITO_CONFIG is set
//  3. env (prefix CIRCUITO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// CIRCUITO_DATA_PATH -> data_path (flat keys matching the koanf tags).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return invalid("addr must not be empty")
	}
	if c.DataPath == "" {
		return invalid("data_path must not be empty")
	}
	if c.FetchTimeoutMS <= 0 {
		return invalid("fetch_timeout_ms must be positive")
	}
	if c.HomeTopN <= 0 {
		return invalid("home_top_n must be positive")
	}
	if c.GeneralCategory == "" {
		return invalid("general_category must not be empty")
	}
	if len(c.MasterCategories) == 0 {
		return invalid("master_categories must not be empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.DataBaseURL != "" {
		u, err := url.Parse(c.DataBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("data_base_url must be an http(s) URL, got %q", c.DataBaseURL)
		}
	}

	seen := make(map[string]string, len(c.Pages))
	for _, page := range requiredPages {
		route := c.Pages[page]
		if !strings.HasPrefix(route, "/") {
			return invalid("pages.%s must be an absolute route, got %q", page, route)
		}
		if other, dup := seen[route]; dup {
			return invalid("pages.%s and pages.%s share route %q", other, page, route)
		}
		seen[route] = page
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
