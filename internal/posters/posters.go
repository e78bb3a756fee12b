// Package posters rewrites IMDB poster thumbnails into links for the full
// size image.
package posters

import (
	"regexp"
	"strings"

	"github.com/aimoviesearch/moviedata/internal/table"
)

const (
	DefaultLinkColumn      = "Poster_Link"
	DefaultLargeLinkColumn = "Poster_Link_Large"
)

// sizingMarker matches the resize/crop directives between _V1_ and the
// first _AL_ or .jpg after it.
var sizingMarker = regexp.MustCompile(`(_V1_).*?(_AL_|\.jpg)`)

const degenerateSuffix = "_AL_.jpg"

// Largify collapses the first sizing marker in link so the image server
// returns the original resolution:
//
//	Largify("poster_V1_SX300.jpg") == "poster_V1_.jpg"
//	Largify("M_V1_UX67_CR0,0,67,98_AL_.jpg") == "M_V1__AL_.jpg"
//
// Links without a marker are returned unchanged.
func Largify(link string) string {
	loc := sizingMarker.FindStringSubmatchIndex(link)
	if loc == nil {
		return link
	}

	terminator := link[loc[4]:loc[5]]
	out := link[:loc[0]] + "_V1_" + "_AL_" + terminator + link[loc[1]:]

	if strings.HasSuffix(out, degenerateSuffix) {
		out = strings.TrimSuffix(out, degenerateSuffix) + ".jpg"
	}
	return out
}

// Options names the columns Rewrite reads and writes.
type Options struct {
	Link      string
	LargeLink string
}

// DefaultOptions returns the column layout of the stock input files.
func DefaultOptions() Options {
	return Options{Link: DefaultLinkColumn, LargeLink: DefaultLargeLinkColumn}
}

// Stats summarizes a rewrite.
type Stats struct {
	Rows      int `yaml:"rows"`
	Rewritten int `yaml:"rewritten"`
	Unchanged int `yaml:"unchanged"`
}

// Rewrite returns a copy of t with the large poster link appended to every
// row.
func Rewrite(t *table.Table, opts Options) (*table.Table, Stats, error) {
	if opts.Link == "" {
		opts.Link = DefaultLinkColumn
	}
	if opts.LargeLink == "" {
		opts.LargeLink = DefaultLargeLinkColumn
	}

	if err := t.Require(opts.Link); err != nil {
		return nil, Stats{}, err
	}
	linkIdx, _ := t.Index(opts.Link)

	stats := Stats{Rows: t.Len()}
	out := t.WithColumn(opts.LargeLink, func(row []string) string {
		large := Largify(row[linkIdx])
		if large == row[linkIdx] {
			stats.Unchanged++
		} else {
			stats.Rewritten++
		}
		return large
	})

	return out, stats, nil
}
