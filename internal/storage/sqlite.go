package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nikbrunner/ytmark/internal/model"
)

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string, log *zap.Logger) (*SQLiteStorage, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate creates the schema. The position column carries the newest-first
// collection order; the JSON wire format has no identity field, so rows are
// addressed by position alone.
func (s *SQLiteStorage) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS videos (
			position INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			added_at TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the collection from the database in stored order.
// Query failures are logged and absorbed as an empty collection.
func (s *SQLiteStorage) Load() (*model.Collection, error) {
	rows, err := s.db.Query(`
		SELECT title, url, added_at
		FROM videos
		ORDER BY position
	`)
	if err != nil {
		s.log.Warn("could not read collection, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return model.NewCollection(), nil
	}
	defer rows.Close()

	entries := []model.VideoEntry{}
	for rows.Next() {
		var e model.VideoEntry
		var addedAtStr string

		if err := rows.Scan(&e.Title, &e.URL, &addedAtStr); err != nil {
			s.log.Warn("corrupt collection data, starting empty",
				zap.String("path", s.path), zap.Error(err))
			return model.NewCollection(), nil
		}

		e.AddedAt, _ = time.Parse(time.RFC3339, addedAtStr)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		s.log.Warn("corrupt collection data, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return model.NewCollection(), nil
	}

	return &model.Collection{Entries: sanitize(entries, s.log)}, nil
}

// Save writes the full collection to the database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(collection *model.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM videos"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO videos (position, title, url, added_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range collection.Entries {
		addedAt := e.AddedAt.Format(time.RFC3339)
		if _, err := stmt.Exec(i, e.Title, e.URL, addedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default database path: ~/.config/ytmark/videos.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ytmark", "videos.db"), nil
}
