package pipelinecmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aimoviesearch/moviedata/internal/movies"
	"github.com/aimoviesearch/moviedata/internal/table"
)

const plotPreviewChars = 500

func executeInspect(ctx context.Context, w io.Writer, input string, limit int, columns []string, width int, details bool) error {
	loader := table.NewLoader(input)

	var t *table.Table
	var err error
	if limit > 0 {
		t, err = loader.LoadSample(limit)
	} else {
		t, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	if len(columns) > 0 {
		t, err = t.Select(columns...)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Loaded %d rows from %s\n", t.Len(), input)

	if !details {
		fmt.Fprintln(w, renderTable(t.Header, t.Rows, width, shouldColorize(w)))
		return nil
	}

	return printMovieDetails(ctx, w, t)
}

func printMovieDetails(ctx context.Context, w io.Writer, t *table.Table) error {
	list, err := movies.FromTable(t)
	if err != nil {
		return fmt.Errorf("failed to read movies: %w", err)
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, m := range list {
		if ctx != nil && ctx.Err() != nil {
			fmt.Fprintln(w, "\nInspection interrupted.")
			return nil
		}

		fmt.Fprintf(w, "MOVIE %d/%d\n", i+1, len(list))
		fmt.Fprintln(w, strings.Repeat("-", 80))

		fmt.Fprintf(w, "Title:          %s\n", m.Title)
		fmt.Fprintf(w, "Match Key:      %s\n", m.ProcessedTitle)
		if m.ReleaseYear != nil {
			fmt.Fprintf(w, "Year:           %d\n", *m.ReleaseYear)
		}
		if runtime := m.AdjustedRuntime(); runtime != "" {
			fmt.Fprintf(w, "Runtime:        %s\n", runtime)
		}
		if rating := m.AdjustedRating(); rating != nil {
			fmt.Fprintf(w, "Rating:         %.1f / 5\n", *rating)
		}
		if m.Genre != "" {
			fmt.Fprintf(w, "Genre:          %s\n", m.Genre)
		}
		if m.Director != "" {
			fmt.Fprintf(w, "Director:       %s\n", m.Director)
		}
		if m.PosterLinkLarge != "" {
			fmt.Fprintf(w, "Poster:         %s\n", m.PosterLinkLarge)
		} else if m.PosterLinkSmall != "" {
			fmt.Fprintf(w, "Poster:         %s\n", m.PosterLinkSmall)
		}

		if m.WikiPlot == nil {
			fmt.Fprintln(w, "Plot:           (no match)")
		} else {
			plot := *m.WikiPlot
			fmt.Fprintf(w, "Plot Length:    %d characters\n", len(plot))
			fmt.Fprintln(w, truncate(plot, plotPreviewChars))
		}

		fmt.Fprintln(w)
	}

	return nil
}
