package pipelinecmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/aimoviesearch/moviedata/internal/config"
	"github.com/aimoviesearch/moviedata/internal/plots"
	"github.com/aimoviesearch/moviedata/internal/table"
)

func executeJoin(cfg *config.Config) (plots.Stats, error) {
	slog.Info("Loading catalog", "path", cfg.Catalog)
	catalog, err := table.NewLoader(cfg.Catalog).Load()
	if err != nil {
		return plots.Stats{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	slog.Info("Loading plot corpus", "path", cfg.Plots)
	corpus, err := table.NewLoader(cfg.Plots).Load()
	if err != nil {
		return plots.Stats{}, fmt.Errorf("failed to load plot corpus: %w", err)
	}

	joined, stats, err := plots.Join(catalog, corpus, cfg.JoinOptions())
	if err != nil {
		return plots.Stats{}, fmt.Errorf("failed to join plots: %w", err)
	}

	slog.Info("Joined plots", "matched", stats.Matched, "unmatched", stats.Unmatched, "ambiguous", stats.Ambiguous)

	if err := table.NewWriter(cfg.Intermediate).Write(joined); err != nil {
		return plots.Stats{}, fmt.Errorf("failed to write joined table: %w", err)
	}

	slog.Info("Saved joined table", "path", cfg.Intermediate)
	return stats, nil
}

func printJoinSummary(w io.Writer, stats plots.Stats) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Plot Join Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Catalog Rows:       %s\n", humanize.Comma(int64(stats.Catalog)))
	fmt.Fprintf(w, "Corpus Rows:        %s\n", humanize.Comma(int64(stats.Corpus)))
	fmt.Fprintf(w, "Matched:            %s (%.2f%%)\n", humanize.Comma(int64(stats.Matched)), percent(stats.Matched, stats.Catalog))
	fmt.Fprintf(w, "Unmatched:          %s\n", humanize.Comma(int64(stats.Unmatched)))
	fmt.Fprintf(w, "Several Plots:      %s\n", humanize.Comma(int64(stats.Ambiguous)))
	fmt.Fprintln(w, "========================================")
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
