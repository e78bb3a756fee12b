package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envVars {
		t.Setenv(name, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Columns.CatalogTitle != "Series_Title" {
		t.Errorf("Expected Series_Title, got %s", cfg.Columns.CatalogTitle)
	}
	if cfg.Columns.Plot != "Wiki_Plot" {
		t.Errorf("Expected Wiki_Plot, got %s", cfg.Columns.Plot)
	}
	if cfg.Columns.PosterLinkLarge != "Poster_Link_Large" {
		t.Errorf("Expected Poster_Link_Large, got %s", cfg.Columns.PosterLinkLarge)
	}
	if cfg.Catalog != "" || cfg.Output != "" {
		t.Errorf("Expected no default paths, got %q and %q", cfg.Catalog, cfg.Output)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "moviedata.toml")

	content := `catalog = "data/imdb_top_1000.csv"
plots = "data/wiki_movie_plots_deduped.csv"
output = "~/movies/final.parquet"

[columns]
corpus_plot = "Summary"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Catalog != "data/imdb_top_1000.csv" {
		t.Errorf("Unexpected catalog: %s", cfg.Catalog)
	}
	if cfg.Plots != "data/wiki_movie_plots_deduped.csv" {
		t.Errorf("Unexpected plots: %s", cfg.Plots)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		expected := filepath.Join(home, "movies", "final.parquet")
		if cfg.Output != expected {
			t.Errorf("Expected %s, got %s", expected, cfg.Output)
		}
	}

	// Overridden column plus untouched defaults.
	if cfg.Columns.CorpusPlot != "Summary" {
		t.Errorf("Expected Summary, got %s", cfg.Columns.CorpusPlot)
	}
	if cfg.Columns.CorpusTitle != "Title" {
		t.Errorf("Expected default Title, got %s", cfg.Columns.CorpusTitle)
	}

	opts := cfg.JoinOptions()
	if opts.CorpusPlot != "Summary" || opts.CatalogTitle != "Series_Title" {
		t.Errorf("Unexpected join options: %+v", opts)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "moviedata.toml")

	if err := os.WriteFile(path, []byte(`catalog = "from-file.csv"`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("MOVIEDATA_CATALOG", "from-env.csv")
	t.Setenv("MOVIEDATA_DB", "movies.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Catalog != "from-env.csv" {
		t.Errorf("Expected env to win, got %s", cfg.Catalog)
	}
	if cfg.Database != "movies.db" {
		t.Errorf("Expected movies.db, got %s", cfg.Database)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("catalog = "), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid TOML, got nil")
	}
}
