package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/circuito/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, ".")
				convey.So(cfg.DataEncoding, convey.ShouldEqual, "utf-8")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "public")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CIRCUITO_ADDR", ":9090")
			_ = os.Setenv("CIRCUITO_DATA_PATH", "dados/ranking.csv")
			_ = os.Setenv("CIRCUITO_DATA_BASE_URL", "https://circuito.example.com/")
			_ = os.Setenv("CIRCUITO_FETCH_TIMEOUT_MS", "2500")
			_ = os.Setenv("CIRCUITO_HOME_TOP_N", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "dados/ranking.csv")
				convey.So(cfg.DataBaseURL, convey.ShouldEqual, "https://circuito.example.com/")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.HomeTopN, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
data_encoding: "iso-8859-1"
general_category: "Ranking Geral"
master_categories:
  - "Mestre das Belgas"
  - "Mestre das Inglesas"
pages:
  home: "/inicio"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CIRCUITO_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataEncoding, convey.ShouldEqual, "iso-8859-1")
				convey.So(cfg.GeneralCategory, convey.ShouldEqual, "Ranking Geral")
				convey.So(cfg.MasterCategories, convey.ShouldResemble, []string{"Mestre das Belgas", "Mestre das Inglesas"})
			})

			convey.Convey("And page routes merge with the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Pages["home"], convey.ShouldEqual, "/inicio")
				convey.So(cfg.Pages["mestres"], convey.ShouldEqual, "/mestres")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
data_path: "file.csv"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CIRCUITO_CONFIG", tmpFile)
			_ = os.Setenv("CIRCUITO_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.DataPath, convey.ShouldEqual, "file.csv")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CIRCUITO_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CIRCUITO_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "/non/existent/file.yaml")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("CIRCUITO_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("CIRCUITO_HOME_TOP_N", "three")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("CIRCUITO_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, name := range []string{
		"CIRCUITO_CONFIG",
		"CIRCUITO_ADDR",
		"CIRCUITO_LOG_LEVEL",
		"CIRCUITO_LOG_FORMAT",
		"CIRCUITO_DATA_DIR",
		"CIRCUITO_DATA_PATH",
		"CIRCUITO_DATA_BASE_URL",
		"CIRCUITO_DATA_ENCODING",
		"CIRCUITO_FETCH_TIMEOUT_MS",
		"CIRCUITO_HOME_TOP_N",
		"CIRCUITO_OUTPUT_DIR",
	} {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "circuito-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
