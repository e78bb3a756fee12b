package store

import (
	"context"
	"fmt"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "001_movies",
		sql: `CREATE TABLE movies (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL UNIQUE,
            processed_title TEXT NOT NULL,
            release_year INTEGER,
            poster_link_small TEXT NOT NULL DEFAULT '',
            poster_link_large TEXT NOT NULL DEFAULT '',
            overview TEXT NOT NULL DEFAULT '',
            wiki_plot TEXT,
            certificate TEXT NOT NULL DEFAULT '',
            runtime_minutes INTEGER,
            genre TEXT NOT NULL DEFAULT '',
            imdb_rating REAL,
            meta_score REAL,
            director TEXT NOT NULL DEFAULT '',
            imported_at TEXT NOT NULL
        )`,
	},
	{
		version: "002_processed_title_index",
		sql:     `CREATE INDEX idx_movies_processed_title ON movies (processed_title)`,
	},
}

func (s *Store) applyMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
