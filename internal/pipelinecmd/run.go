package pipelinecmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aimoviesearch/moviedata/internal/config"
	"github.com/aimoviesearch/moviedata/internal/report"
)

func executeRun(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	slog.Info("Starting pipeline run", "catalog", cfg.Catalog, "plots", cfg.Plots, "output", cfg.Output)

	r := report.New(runConfig(cfg), started)

	stageStart := time.Now()
	joinStats, err := executeJoin(cfg)
	if err != nil {
		return nil, err
	}
	r.Join = joinStats
	r.Stage("join", time.Since(stageStart))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted after join: %w", err)
	}

	stageStart = time.Now()
	final, posterStats, err := executePosters(cfg)
	if err != nil {
		return nil, err
	}
	r.Posters = posterStats
	r.Stage("posters", time.Since(stageStart))

	if cfg.Database != "" {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted after posters: %w", err)
		}

		stageStart = time.Now()
		importStats, err := importTable(ctx, final, cfg.Database)
		if err != nil {
			return nil, err
		}
		r.Import = &importStats
		r.Stage("import", time.Since(stageStart))
	}

	r.Finish(time.Since(started))

	if cfg.ReportDir != "" {
		path, err := report.Save(cfg.ReportDir, r, started)
		if err != nil {
			return nil, fmt.Errorf("failed to save run report: %w", err)
		}
		slog.Info("Saved run report", "path", path)
	}

	return r, nil
}

func runConfig(cfg *config.Config) report.RunConfig {
	return report.RunConfig{
		Catalog:      cfg.Catalog,
		Plots:        cfg.Plots,
		Intermediate: cfg.Intermediate,
		Output:       cfg.Output,
		Database:     cfg.Database,
		Columns: map[string]string{
			"catalog_title":     cfg.Columns.CatalogTitle,
			"catalog_year":      cfg.Columns.CatalogYear,
			"poster_link":       cfg.Columns.PosterLink,
			"corpus_title":      cfg.Columns.CorpusTitle,
			"corpus_plot":       cfg.Columns.CorpusPlot,
			"processed_title":   cfg.Columns.ProcessedTitle,
			"plot":              cfg.Columns.Plot,
			"poster_link_large": cfg.Columns.PosterLinkLarge,
		},
	}
}

func printRunSummary(w io.Writer, r *report.Report) {
	printJoinSummary(w, r.Join)
	printPosterSummary(w, r.Posters)
	if r.Import != nil {
		printImportSummary(w, *r.Import)
	}
	fmt.Fprintf(w, "\nFinished in %s\n", r.Timing.Total)
}
