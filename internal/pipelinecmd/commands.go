package pipelinecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aimoviesearch/moviedata/internal/config"
)

// loadConfig resolves configuration for cmd and applies any path flags the
// user set explicitly. flags maps flag names to the fields they override.
func loadConfig(cmd *cobra.Command, flags map[string]func(*config.Config) *string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	for name, field := range flags {
		if cmd.Flags().Changed(name) {
			v, err := cmd.Flags().GetString(name)
			if err != nil {
				return nil, err
			}
			*field(cfg) = v
		}
	}
	cfg.Expand()

	return cfg, nil
}

func requirePath(value, flag, key string) error {
	if value == "" {
		return fmt.Errorf("--%s is required (or set %s in moviedata.toml)", flag, key)
	}
	return nil
}

var (
	catalogField      = func(c *config.Config) *string { return &c.Catalog }
	plotsField        = func(c *config.Config) *string { return &c.Plots }
	intermediateField = func(c *config.Config) *string { return &c.Intermediate }
	outputField       = func(c *config.Config) *string { return &c.Output }
	reportDirField    = func(c *config.Config) *string { return &c.ReportDir }
	databaseField     = func(c *config.Config) *string { return &c.Database }
)

// NewJoinCmd creates the join command
func NewJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Attach Wikipedia plots to catalog movies by normalized title",
		Long: `Join the movie catalog with the plot corpus.

Titles on both sides are normalized (punctuation removed, lowercased) and
matched exactly. Each catalog row receives the first matching plot in corpus
order, or an empty Wiki_Plot when nothing matches. Processed_Title and
Wiki_Plot are appended; every other column is written unchanged.`,
		Example: `  # Join the IMDB top 1000 with the Wikipedia plot dump
  moviedata join --catalog imdb_top_1000.csv --plots wiki_movie_plots_deduped.csv \
    --output imdb_with_wiki_plots.csv

  # Write parquet instead of CSV
  moviedata join --catalog imdb_top_1000.csv --plots plots.parquet --output joined.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]func(*config.Config) *string{
				"catalog": catalogField,
				"plots":   plotsField,
				"output":  intermediateField,
			})
			if err != nil {
				return err
			}

			if err := requirePath(cfg.Catalog, "catalog", "catalog"); err != nil {
				return err
			}
			if err := requirePath(cfg.Plots, "plots", "plots"); err != nil {
				return err
			}
			if err := requirePath(cfg.Intermediate, "output", "intermediate"); err != nil {
				return err
			}

			stats, err := executeJoin(cfg)
			if err != nil {
				return err
			}
			printJoinSummary(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().String("catalog", "", "Catalog table (Series_Title, Released_Year, Poster_Link)")
	cmd.Flags().String("plots", "", "Plot corpus table (Title, Plot)")
	cmd.Flags().String("output", "", "Joined table to write")

	return cmd
}

// NewPostersCmd creates the posters command
func NewPostersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posters",
		Short: "Add full size poster links",
		Long: `Rewrite each Poster_Link into a link for the full size image and store it in
Poster_Link_Large.

The sizing marker between _V1_ and the following _AL_ or .jpg is collapsed,
so the image server returns the original poster instead of a thumbnail.
Links without a marker are copied unchanged.`,
		Example: `  moviedata posters --input imdb_with_wiki_plots.csv \
    --output imdb_with_wiki_plots_large_posters.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]func(*config.Config) *string{
				"input":  intermediateField,
				"output": outputField,
			})
			if err != nil {
				return err
			}

			if err := requirePath(cfg.Intermediate, "input", "intermediate"); err != nil {
				return err
			}
			if err := requirePath(cfg.Output, "output", "output"); err != nil {
				return err
			}

			_, stats, err := executePosters(cfg)
			if err != nil {
				return err
			}
			printPosterSummary(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().String("input", "", "Joined table to read")
	cmd.Flags().String("output", "", "Final table to write")

	return cmd
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the join and poster pipelines back to back",
		Long: `Run both pipelines: join plots into the catalog, write the intermediate
table, then add large poster links and write the final table.

With --report-dir a YAML report of the run is written. With --db the final
table is also imported into the SQLite movie store.`,
		Example: `  moviedata run --catalog imdb_top_1000.csv --plots wiki_movie_plots_deduped.csv \
    --intermediate imdb_with_wiki_plots.csv \
    --output imdb_with_wiki_plots_large_posters.csv \
    --report-dir reports --db movies.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]func(*config.Config) *string{
				"catalog":      catalogField,
				"plots":        plotsField,
				"intermediate": intermediateField,
				"output":       outputField,
				"report-dir":   reportDirField,
				"db":           databaseField,
			})
			if err != nil {
				return err
			}

			for _, p := range []struct{ value, flag, key string }{
				{cfg.Catalog, "catalog", "catalog"},
				{cfg.Plots, "plots", "plots"},
				{cfg.Intermediate, "intermediate", "intermediate"},
				{cfg.Output, "output", "output"},
			} {
				if err := requirePath(p.value, p.flag, p.key); err != nil {
					return err
				}
			}

			r, err := executeRun(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printRunSummary(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().String("catalog", "", "Catalog table (Series_Title, Released_Year, Poster_Link)")
	cmd.Flags().String("plots", "", "Plot corpus table (Title, Plot)")
	cmd.Flags().String("intermediate", "", "Joined table to write")
	cmd.Flags().String("output", "", "Final table to write")
	cmd.Flags().String("report-dir", "", "Directory for the YAML run report")
	cmd.Flags().String("db", "", "SQLite movie store to import the final table into")

	return cmd
}

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the final table into the SQLite movie store",
		Long: `Import movies from the final table into the SQLite database used by the
search app. Movies whose title is already stored are skipped.`,
		Example: `  moviedata import --input imdb_with_wiki_plots_large_posters.csv --db movies.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]func(*config.Config) *string{
				"input": outputField,
				"db":    databaseField,
			})
			if err != nil {
				return err
			}

			if err := requirePath(cfg.Output, "input", "output"); err != nil {
				return err
			}
			if err := requirePath(cfg.Database, "db", "database"); err != nil {
				return err
			}

			stats, err := executeImport(cmd.Context(), cfg.Output, cfg.Database)
			if err != nil {
				return err
			}
			printImportSummary(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().String("input", "", "Final table to import")
	cmd.Flags().String("db", "", "SQLite movie store")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var (
		input   string
		limit   int
		columns []string
		width   int
		details bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect table rows (useful for checking join results)",
		Long: `Print rows from a csv, tsv, jsonl or parquet table.

By default rows are rendered as a table, long cells cut to --width. With
--details each movie is printed as a record with its parsed year, runtime
and rating plus a plot preview.`,
		Example: `  # First 5 rows, selected columns
  moviedata inspect --input imdb_with_wiki_plots.csv --limit 5 \
    --columns Series_Title,Processed_Title,Wiki_Plot

  # Movie details for the final table
  moviedata inspect --input imdb_with_wiki_plots_large_posters.csv --details

  # All rows
  moviedata inspect --input joined.parquet --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			return executeInspect(cmd.Context(), cmd.OutOrStdout(), input, limit, columns, width, details)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Table to inspect (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rows to show (0 for all)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to show (default all)")
	cmd.Flags().IntVar(&width, "width", 40, "Maximum characters per cell")
	cmd.Flags().BoolVar(&details, "details", false, "Show parsed movie details instead of a table")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
