package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aimoviesearch/moviedata/internal/movies"
)

// ImportStats reports the outcome of an import.
type ImportStats struct {
	Inserted int `yaml:"inserted"`
	Skipped  int `yaml:"skipped"`
}

// Import inserts movies in one transaction. A movie whose title is already
// stored, or repeats an earlier title in the batch, is skipped.
func (s *Store) Import(ctx context.Context, list []movies.Movie) (ImportStats, error) {
	var stats ImportStats
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies (
            id, title, processed_title, release_year, poster_link_small, poster_link_large,
            overview, wiki_plot, certificate, runtime_minutes, genre, imdb_rating,
            meta_score, director, imported_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (title) DO NOTHING`)
	if err != nil {
		return stats, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range list {
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		res, err := stmt.ExecContext(ctx,
			id.String(),
			m.Title,
			m.ProcessedTitle,
			nullableInt(m.ReleaseYear),
			m.PosterLinkSmall,
			m.PosterLinkLarge,
			m.Overview,
			nullableString(m.WikiPlot),
			m.Certificate,
			nullableInt(m.Runtime),
			m.Genre,
			nullableFloat(m.IMDBRating),
			nullableFloat(m.MetaScore),
			m.Director,
			timestamp,
		)
		if err != nil {
			return stats, fmt.Errorf("insert %q: %w", m.Title, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return stats, fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			stats.Skipped++
		} else {
			stats.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Get fetches a movie by its catalog title.
func (s *Store) Get(ctx context.Context, title string) (*movies.Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
            id, title, processed_title, release_year, poster_link_small, poster_link_large,
            overview, wiki_plot, certificate, runtime_minutes, genre, imdb_rating,
            meta_score, director
        FROM movies WHERE title = ?`, title)

	var (
		m         movies.Movie
		id        string
		year      sql.NullInt64
		plot      sql.NullString
		runtime   sql.NullInt64
		rating    sql.NullFloat64
		metaScore sql.NullFloat64
	)
	err := row.Scan(
		&id,
		&m.Title,
		&m.ProcessedTitle,
		&year,
		&m.PosterLinkSmall,
		&m.PosterLinkLarge,
		&m.Overview,
		&plot,
		&m.Certificate,
		&runtime,
		&m.Genre,
		&rating,
		&metaScore,
		&m.Director,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse movie id %q: %w", id, err)
	}
	m.ID = parsed

	if year.Valid {
		v := int(year.Int64)
		m.ReleaseYear = &v
	}
	if plot.Valid {
		m.WikiPlot = &plot.String
	}
	if runtime.Valid {
		v := int(runtime.Int64)
		m.Runtime = &v
	}
	if rating.Valid {
		m.IMDBRating = &rating.Float64
	}
	if metaScore.Valid {
		m.MetaScore = &metaScore.Float64
	}

	return &m, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
