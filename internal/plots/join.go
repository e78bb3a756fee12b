// Package plots attaches narrative plot text from a plot corpus to the rows
// of a movie catalog by matching normalized titles.
package plots

import (
	"log/slog"

	"github.com/aimoviesearch/moviedata/internal/table"
	"github.com/aimoviesearch/moviedata/internal/titles"
)

// Column names of the IMDB catalog export and the Wikipedia plot corpus.
const (
	DefaultCatalogTitleColumn   = "Series_Title"
	DefaultCatalogYearColumn    = "Released_Year"
	DefaultCorpusTitleColumn    = "Title"
	DefaultCorpusPlotColumn     = "Plot"
	DefaultProcessedTitleColumn = "Processed_Title"
	DefaultPlotColumn           = "Wiki_Plot"
)

// Options names the columns the join reads and writes. Empty fields fall
// back to the defaults above.
type Options struct {
	CatalogTitle   string
	CatalogYear    string
	CorpusTitle    string
	CorpusPlot     string
	ProcessedTitle string
	Plot           string
}

// DefaultOptions returns the column layout of the stock input files.
func DefaultOptions() Options {
	return Options{
		CatalogTitle:   DefaultCatalogTitleColumn,
		CatalogYear:    DefaultCatalogYearColumn,
		CorpusTitle:    DefaultCorpusTitleColumn,
		CorpusPlot:     DefaultCorpusPlotColumn,
		ProcessedTitle: DefaultProcessedTitleColumn,
		Plot:           DefaultPlotColumn,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CatalogTitle == "" {
		o.CatalogTitle = d.CatalogTitle
	}
	if o.CatalogYear == "" {
		o.CatalogYear = d.CatalogYear
	}
	if o.CorpusTitle == "" {
		o.CorpusTitle = d.CorpusTitle
	}
	if o.CorpusPlot == "" {
		o.CorpusPlot = d.CorpusPlot
	}
	if o.ProcessedTitle == "" {
		o.ProcessedTitle = d.ProcessedTitle
	}
	if o.Plot == "" {
		o.Plot = d.Plot
	}
	return o
}

// Stats summarizes a join.
type Stats struct {
	Catalog   int `yaml:"catalog_rows"`
	Corpus    int `yaml:"corpus_rows"`
	Matched   int `yaml:"matched"`
	Unmatched int `yaml:"unmatched"`
	// Ambiguous counts matched rows whose key had more than one plot.
	Ambiguous int `yaml:"ambiguous"`
}

// Join returns a copy of catalog with two columns appended: the normalized
// title and the first plot whose normalized corpus title equals it, or ""
// when nothing matches. Rows keep their count and order.
//
// The release year column must be present but does not take part in
// matching; remakes sharing a title all receive the earliest corpus plot.
func Join(catalog, corpus *table.Table, opts Options) (*table.Table, Stats, error) {
	opts = opts.withDefaults()

	if err := catalog.Require(opts.CatalogTitle, opts.CatalogYear); err != nil {
		return nil, Stats{}, err
	}

	ix, err := NewIndex(corpus, opts.CorpusTitle, opts.CorpusPlot)
	if err != nil {
		return nil, Stats{}, err
	}

	slog.Debug("Indexed plot corpus", "rows", ix.Rows(), "distinct_titles", ix.Keys())

	stats := Stats{
		Catalog: catalog.Len(),
		Corpus:  ix.Rows(),
	}

	titleIdx, _ := catalog.Index(opts.CatalogTitle)
	out := catalog.WithColumn(opts.ProcessedTitle, func(row []string) string {
		return titles.Normalize(row[titleIdx])
	})

	keyIdx, _ := out.Index(opts.ProcessedTitle)
	out = out.WithColumn(opts.Plot, func(row []string) string {
		matches := ix.Matches(row[keyIdx])
		if len(matches) == 0 {
			stats.Unmatched++
			slog.Debug("No plot for title", "title", row[titleIdx], "key", row[keyIdx])
			return ""
		}
		stats.Matched++
		if len(matches) > 1 {
			stats.Ambiguous++
		}
		return matches[0]
	})

	return out, stats, nil
}
