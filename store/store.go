// Package store keeps a SQLite index of beatmap metadata so library
// tools can query a songs folder without reparsing every chart.
package store

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"osukit/dotosu"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS beatmaps (
		path TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		creator TEXT NOT NULL,
		version TEXT NOT NULL,
		beatmap_id INTEGER NOT NULL,
		beatmap_set_id INTEGER NOT NULL,
		mode INTEGER NOT NULL,
		hit_objects INTEGER NOT NULL
	);
	`

// Entry is one indexed difficulty.
type Entry struct {
	Path         string
	Title        string
	Artist       string
	Creator      string
	Version      string
	BeatmapID    int
	BeatmapSetID int
	Mode         dotosu.GameMode
	HitObjects   int
}

// EntryFromBeatmap projects the indexable fields of a decoded beatmap.
func EntryFromBeatmap(path string, b *dotosu.Beatmap) Entry {
	return Entry{
		Path:         path,
		Title:        b.Metadata.Title,
		Artist:       b.Metadata.Artist,
		Creator:      b.Metadata.Creator,
		Version:      b.Metadata.Version,
		BeatmapID:    b.Metadata.BeatmapID,
		BeatmapSetID: b.Metadata.BeatmapSetID,
		Mode:         b.General.Mode,
		HitObjects:   len(b.HitObjects),
	}
}

// Store wraps the SQLite database holding the index.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (creating if needed) the index database at path.
func Open(path string, logger *log.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create beatmaps table: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces the entry for its path.
func (s *Store) Put(e Entry) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO beatmaps
			(path, title, artist, creator, version, beatmap_id, beatmap_set_id, mode, hit_objects)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Path, e.Title, e.Artist, e.Creator, e.Version, e.BeatmapID, e.BeatmapSetID, int(e.Mode), e.HitObjects,
	)
	if err != nil {
		return fmt.Errorf("index %s: %w", e.Path, err)
	}
	s.logger.Printf("indexed %s (%s - %s [%s])", e.Path, e.Artist, e.Title, e.Version)
	return nil
}

// Get looks up the entry for path; found is false if it was never indexed.
func (s *Store) Get(path string) (e Entry, found bool, err error) {
	row := s.db.QueryRow(
		`SELECT path, title, artist, creator, version, beatmap_id, beatmap_set_id, mode, hit_objects
			FROM beatmaps WHERE path = ?`, path)
	var mode int
	err = row.Scan(&e.Path, &e.Title, &e.Artist, &e.Creator, &e.Version, &e.BeatmapID, &e.BeatmapSetID, &mode, &e.HitObjects)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("look up %s: %w", path, err)
	}
	e.Mode = dotosu.GameMode(mode)
	return e, true, nil
}

// All returns every indexed entry ordered by artist and title.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT path, title, artist, creator, version, beatmap_id, beatmap_set_id, mode, hit_objects
			FROM beatmaps ORDER BY artist, title, version`)
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var mode int
		if err := rows.Scan(&e.Path, &e.Title, &e.Artist, &e.Creator, &e.Version, &e.BeatmapID, &e.BeatmapSetID, &mode, &e.HitObjects); err != nil {
			return nil, fmt.Errorf("scan index row: %w", err)
		}
		e.Mode = dotosu.GameMode(mode)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
