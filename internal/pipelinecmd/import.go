package pipelinecmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/aimoviesearch/moviedata/internal/movies"
	"github.com/aimoviesearch/moviedata/internal/store"
	"github.com/aimoviesearch/moviedata/internal/table"
)

func executeImport(ctx context.Context, input, dbPath string) (store.ImportStats, error) {
	slog.Info("Loading final table", "path", input)
	final, err := table.NewLoader(input).Load()
	if err != nil {
		return store.ImportStats{}, fmt.Errorf("failed to load final table: %w", err)
	}

	return importTable(ctx, final, dbPath)
}

func importTable(ctx context.Context, final *table.Table, dbPath string) (store.ImportStats, error) {
	list, err := movies.FromTable(final)
	if err != nil {
		return store.ImportStats{}, fmt.Errorf("failed to read movies: %w", err)
	}

	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return store.ImportStats{}, fmt.Errorf("failed to open movie store: %w", err)
	}
	defer s.Close()

	stats, err := s.Import(ctx, list)
	if err != nil {
		return store.ImportStats{}, fmt.Errorf("failed to import movies: %w", err)
	}

	slog.Info("Imported movies", "db", dbPath, "inserted", stats.Inserted, "skipped", stats.Skipped)
	return stats, nil
}

func printImportSummary(w io.Writer, stats store.ImportStats) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Movie Store Import")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Inserted:           %s\n", humanize.Comma(int64(stats.Inserted)))
	fmt.Fprintf(w, "Already Stored:     %s\n", humanize.Comma(int64(stats.Skipped)))
	fmt.Fprintln(w, "========================================")
}
