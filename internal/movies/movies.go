// Package movies provides the typed view of an enriched catalog row that the
// search app stores and displays.
package movies

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aimoviesearch/moviedata/internal/table"
)

// Columns of the final table consumed by the app.
const (
	ColumnTitle           = "Series_Title"
	ColumnProcessedTitle  = "Processed_Title"
	ColumnReleaseYear     = "Released_Year"
	ColumnPosterLinkSmall = "Poster_Link"
	ColumnPosterLinkLarge = "Poster_Link_Large"
	ColumnOverview        = "Overview"
	ColumnWikiPlot        = "Wiki_Plot"
	ColumnCertificate     = "Certificate"
	ColumnRuntime         = "Runtime"
	ColumnGenre           = "Genre"
	ColumnIMDBRating      = "IMDB_Rating"
	ColumnMetaScore       = "Meta_score"
	ColumnDirector        = "Director"
)

// Movie is one enriched catalog entry with its numeric fields parsed.
// Pointer fields are nil when the source cell is empty or unparsable.
type Movie struct {
	ID              uuid.UUID
	Title           string
	ProcessedTitle  string
	ReleaseYear     *int
	PosterLinkSmall string
	PosterLinkLarge string
	Overview        string
	WikiPlot        *string // nil when no plot matched
	Certificate     string
	Runtime         *int // minutes
	Genre           string
	IMDBRating      *float64
	MetaScore       *float64
	Director        string
}

// FromRow builds a Movie from a row of t. Only the title is required;
// other columns are read when present.
func FromRow(t *table.Table, row []string) (Movie, error) {
	title := t.Value(row, ColumnTitle)
	if title == "" {
		return Movie{}, fmt.Errorf("row has no %s", ColumnTitle)
	}

	m := Movie{
		ID:              uuid.New(),
		Title:           title,
		ProcessedTitle:  t.Value(row, ColumnProcessedTitle),
		ReleaseYear:     ParseYear(t.Value(row, ColumnReleaseYear)),
		PosterLinkSmall: t.Value(row, ColumnPosterLinkSmall),
		PosterLinkLarge: t.Value(row, ColumnPosterLinkLarge),
		Overview:        t.Value(row, ColumnOverview),
		Certificate:     t.Value(row, ColumnCertificate),
		Runtime:         ParseRuntime(t.Value(row, ColumnRuntime)),
		Genre:           t.Value(row, ColumnGenre),
		IMDBRating:      parseFloat(t.Value(row, ColumnIMDBRating)),
		MetaScore:       parseFloat(t.Value(row, ColumnMetaScore)),
		Director:        t.Value(row, ColumnDirector),
	}

	// "" is the join's no-match marker.
	if plot := t.Value(row, ColumnWikiPlot); plot != "" {
		m.WikiPlot = &plot
	}

	return m, nil
}

// FromTable converts every row of t. It fails on the first row without a
// title rather than guessing an identifier.
func FromTable(t *table.Table) ([]Movie, error) {
	if err := t.Require(ColumnTitle); err != nil {
		return nil, err
	}

	out := make([]Movie, 0, t.Len())
	for i, row := range t.Rows {
		m, err := FromRow(t, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ParseYear accepts a four digit year.
func ParseYear(s string) *int {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &year
}

// ParseRuntime converts an IMDB runtime like "142 min" into minutes.
func ParseRuntime(s string) *int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "min"))
	minutes, err := strconv.Atoi(s)
	if err != nil || minutes < 0 {
		return nil
	}
	return &minutes
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// AdjustedRating rescales the 10 point IMDB rating to 5 points.
func (m Movie) AdjustedRating() *float64 {
	if m.IMDBRating == nil {
		return nil
	}
	r := *m.IMDBRating * 5 / 10
	return &r
}

// AdjustedRuntime formats the runtime as "2 hours, 22 minutes".
func (m Movie) AdjustedRuntime() string {
	if m.Runtime == nil {
		return ""
	}

	hours := *m.Runtime / 60
	minutes := *m.Runtime % 60

	hourText := "hours"
	if hours == 1 {
		hourText = "hour"
	}
	minuteText := "minutes"
	if minutes == 1 {
		minuteText = "minute"
	}

	return fmt.Sprintf("%d %s, %d %s", hours, hourText, minutes, minuteText)
}
