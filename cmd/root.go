package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aimoviesearch/moviedata/internal/pipelinecmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "moviedata",
		Short: "Movie dataset preparation for the movie search app",
		Long: `moviedata prepares the movie dataset behind the search app.

It joins the IMDB catalog with Wikipedia plot summaries by normalized title,
rewrites poster thumbnails into full size links and can load the result into
the app's SQLite store.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default ~/.config/moviedata/config.toml or ./moviedata.toml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(pipelinecmd.NewJoinCmd())
	cmd.AddCommand(pipelinecmd.NewPostersCmd())
	cmd.AddCommand(pipelinecmd.NewRunCmd())
	cmd.AddCommand(pipelinecmd.NewImportCmd())
	cmd.AddCommand(pipelinecmd.NewInspectCmd())

	return cmd
}
