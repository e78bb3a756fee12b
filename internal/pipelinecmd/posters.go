package pipelinecmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/aimoviesearch/moviedata/internal/config"
	"github.com/aimoviesearch/moviedata/internal/posters"
	"github.com/aimoviesearch/moviedata/internal/table"
)

func executePosters(cfg *config.Config) (*table.Table, posters.Stats, error) {
	slog.Info("Loading joined table", "path", cfg.Intermediate)
	joined, err := table.NewLoader(cfg.Intermediate).Load()
	if err != nil {
		return nil, posters.Stats{}, fmt.Errorf("failed to load joined table: %w", err)
	}

	final, stats, err := posters.Rewrite(joined, cfg.PosterOptions())
	if err != nil {
		return nil, posters.Stats{}, fmt.Errorf("failed to rewrite poster links: %w", err)
	}

	slog.Info("Rewrote poster links", "rewritten", stats.Rewritten, "unchanged", stats.Unchanged)

	if err := table.NewWriter(cfg.Output).Write(final); err != nil {
		return nil, posters.Stats{}, fmt.Errorf("failed to write final table: %w", err)
	}

	slog.Info("Saved final table", "path", cfg.Output)
	return final, stats, nil
}

func printPosterSummary(w io.Writer, stats posters.Stats) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Poster Link Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Rows:               %s\n", humanize.Comma(int64(stats.Rows)))
	fmt.Fprintf(w, "Rewritten:          %s\n", humanize.Comma(int64(stats.Rewritten)))
	fmt.Fprintf(w, "Unchanged:          %s\n", humanize.Comma(int64(stats.Unchanged)))
	fmt.Fprintln(w, "========================================")
}
