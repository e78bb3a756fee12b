// Package config resolves where the pipelines read and write their tables
// and which columns they use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aimoviesearch/moviedata/internal/plots"
	"github.com/aimoviesearch/moviedata/internal/posters"
)

// Config holds table locations and column names. Paths may use ~.
type Config struct {
	Catalog      string `koanf:"catalog"`      // IMDB catalog export
	Plots        string `koanf:"plots"`        // Wikipedia plot corpus
	Intermediate string `koanf:"intermediate"` // catalog joined with plots
	Output       string `koanf:"output"`       // final table with large posters
	ReportDir    string `koanf:"report_dir"`   // where run reports go; empty disables them
	Database     string `koanf:"database"`     // SQLite movie store

	Columns Columns `koanf:"columns"`
}

// Columns names the columns read from and added to the tables.
type Columns struct {
	CatalogTitle    string `koanf:"catalog_title"`
	CatalogYear     string `koanf:"catalog_year"`
	PosterLink      string `koanf:"poster_link"`
	CorpusTitle     string `koanf:"corpus_title"`
	CorpusPlot      string `koanf:"corpus_plot"`
	ProcessedTitle  string `koanf:"processed_title"`
	Plot            string `koanf:"plot"`
	PosterLinkLarge string `koanf:"poster_link_large"`
}

// envVars maps environment variables onto config fields.
var envVars = map[string]func(*Config) *string{
	"MOVIEDATA_CATALOG":      func(c *Config) *string { return &c.Catalog },
	"MOVIEDATA_PLOTS":        func(c *Config) *string { return &c.Plots },
	"MOVIEDATA_INTERMEDIATE": func(c *Config) *string { return &c.Intermediate },
	"MOVIEDATA_OUTPUT":       func(c *Config) *string { return &c.Output },
	"MOVIEDATA_REPORT_DIR":   func(c *Config) *string { return &c.ReportDir },
	"MOVIEDATA_DB":           func(c *Config) *string { return &c.Database },
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	jo := plots.DefaultOptions()
	po := posters.DefaultOptions()
	return &Config{
		Columns: Columns{
			CatalogTitle:    jo.CatalogTitle,
			CatalogYear:     jo.CatalogYear,
			PosterLink:      po.Link,
			CorpusTitle:     jo.CorpusTitle,
			CorpusPlot:      jo.CorpusPlot,
			ProcessedTitle:  jo.ProcessedTitle,
			Plot:            jo.Plot,
			PosterLinkLarge: po.LargeLink,
		},
	}
}

// Load layers, lowest priority first: defaults, config files, then
// MOVIEDATA_* environment variables. When path is set only that file is
// read and it must exist; otherwise ~/.config/moviedata/config.toml and
// ./moviedata.toml are read when present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	var configPaths []string
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		configPaths = []string{path}
	} else {
		configPaths = getConfigPaths()
	}

	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", p, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for name, field := range envVars {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field(cfg) = v
		}
	}

	cfg.Expand()
	return cfg, nil
}

// Expand resolves ~ in every path.
func (c *Config) Expand() {
	c.Catalog = expandPath(c.Catalog)
	c.Plots = expandPath(c.Plots)
	c.Intermediate = expandPath(c.Intermediate)
	c.Output = expandPath(c.Output)
	c.ReportDir = expandPath(c.ReportDir)
	c.Database = expandPath(c.Database)
}

// JoinOptions returns the column names for the plot join.
func (c *Config) JoinOptions() plots.Options {
	return plots.Options{
		CatalogTitle:   c.Columns.CatalogTitle,
		CatalogYear:    c.Columns.CatalogYear,
		CorpusTitle:    c.Columns.CorpusTitle,
		CorpusPlot:     c.Columns.CorpusPlot,
		ProcessedTitle: c.Columns.ProcessedTitle,
		Plot:           c.Columns.Plot,
	}
}

// PosterOptions returns the column names for the poster rewrite.
func (c *Config) PosterOptions() posters.Options {
	return posters.Options{
		Link:      c.Columns.PosterLink,
		LargeLink: c.Columns.PosterLinkLarge,
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/moviedata/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "moviedata", "config.toml"))
	}

	// 2. ./moviedata.toml (pwd, highest priority)
	paths = append(paths, "moviedata.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
