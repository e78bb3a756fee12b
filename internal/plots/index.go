package plots

import (
	"github.com/aimoviesearch/moviedata/internal/table"
	"github.com/aimoviesearch/moviedata/internal/titles"
)

// Index maps normalized titles to the plots sharing that key, in corpus
// order. It is built once so each catalog lookup is a map access.
type Index struct {
	plots map[string][]string
	rows  int
}

// NewIndex indexes every row of the corpus by the normalized value of
// titleColumn.
func NewIndex(corpus *table.Table, titleColumn, plotColumn string) (*Index, error) {
	if err := corpus.Require(titleColumn, plotColumn); err != nil {
		return nil, err
	}
	titleIdx, _ := corpus.Index(titleColumn)
	plotIdx, _ := corpus.Index(plotColumn)

	ix := &Index{
		plots: make(map[string][]string),
		rows:  corpus.Len(),
	}
	for _, row := range corpus.Rows {
		key := titles.Normalize(row[titleIdx])
		ix.plots[key] = append(ix.plots[key], row[plotIdx])
	}

	return ix, nil
}

// Matches returns every plot filed under key, earliest corpus row first.
func (ix *Index) Matches(key string) []string {
	return ix.plots[key]
}

// First returns the earliest plot filed under key.
func (ix *Index) First(key string) (string, bool) {
	matches := ix.plots[key]
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// Keys returns the number of distinct normalized titles.
func (ix *Index) Keys() int {
	return len(ix.plots)
}

// Rows returns the number of corpus rows indexed.
func (ix *Index) Rows() int {
	return ix.rows
}
