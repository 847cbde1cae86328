package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Library manages a persistent collection of saved artists using SQLite
type Library struct {
	db *sql.DB
}

// SavedArtist represents an artist in the library
type SavedArtist struct {
	ID          string
	Name        string
	Hotttnesss  float64
	Familiarity float64
	Note        string
	SavedAt     time.Time
}

// Open opens (creating if necessary) an artist library backed by SQLite
func Open(dbPath string) (*Library, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool size to 1 for in-memory databases to ensure consistency
	// For file-based databases, this still works well for our use case
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// Create the schema
	schema := `
		CREATE TABLE IF NOT EXISTS artists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hotttnesss REAL NOT NULL DEFAULT 0,
			familiarity REAL NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT '',
			saved_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_artists_name ON artists(name);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Save adds an artist to the library, or updates it if already saved
func (l *Library) Save(ctx context.Context, artist SavedArtist) error {
	query := `
		INSERT INTO artists (id, name, hotttnesss, familiarity, note, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			hotttnesss = excluded.hotttnesss,
			familiarity = excluded.familiarity,
			note = excluded.note
	`

	savedAt := artist.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err := l.db.ExecContext(ctx, query,
		artist.ID,
		artist.Name,
		artist.Hotttnesss,
		artist.Familiarity,
		artist.Note,
		savedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save artist: %w", err)
	}

	return nil
}

// Remove deletes an artist from the library
func (l *Library) Remove(ctx context.Context, id string) error {
	result, err := l.db.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("artist %s not in library", id)
	}

	return nil
}

// Get retrieves one saved artist by id
func (l *Library) Get(ctx context.Context, id string) (*SavedArtist, error) {
	query := `
		SELECT id, name, hotttnesss, familiarity, note, saved_at
		FROM artists
		WHERE id = ?
	`

	var a SavedArtist
	var savedAtUnix int64

	err := l.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Hotttnesss,
		&a.Familiarity,
		&a.Note,
		&savedAtUnix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist %s not in library", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	a.SavedAt = time.Unix(savedAtUnix, 0)
	return &a, nil
}

// All retrieves every saved artist, most recently saved first
func (l *Library) All(ctx context.Context) ([]SavedArtist, error) {
	query := `
		SELECT id, name, hotttnesss, familiarity, note, saved_at
		FROM artists
		ORDER BY saved_at DESC
	`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []SavedArtist
	for rows.Next() {
		var a SavedArtist
		var savedAtUnix int64

		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Hotttnesss,
			&a.Familiarity,
			&a.Note,
			&savedAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		a.SavedAt = time.Unix(savedAtUnix, 0)
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

// Count returns the number of saved artists
func (l *Library) Count(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}

	return count, nil
}
