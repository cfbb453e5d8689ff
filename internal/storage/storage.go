package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nikbrunner/ytmark/internal/model"
)

// Storage defines the interface for persisting the video collection.
type Storage interface {
	Load() (*model.Collection, error)
	Save(collection *model.Collection) error
}

// JSONStorage implements Storage using a single JSON file holding the
// ordered entry array, newest first.
type JSONStorage struct {
	path string
	log  *zap.Logger
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string, log *zap.Logger) *JSONStorage {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONStorage{path: path, log: log}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the collection from the JSON file.
// A missing file yields an empty collection. So does unreadable or corrupt
// data: the failure is logged and absorbed here, never surfaced to callers
// as a blocking error.
func (s *JSONStorage) Load() (*model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("could not read collection, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return model.NewCollection(), nil
	}

	var entries []model.VideoEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("corrupt collection data, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return model.NewCollection(), nil
	}

	return &model.Collection{Entries: sanitize(entries, s.log)}, nil
}

// Save writes the full collection to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(collection *model.Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	entries := collection.Entries
	if entries == nil {
		entries = []model.VideoEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// sanitize drops records that lost their URL, best effort. A record missing
// its title is kept; the URL is the one field nothing works without.
func sanitize(entries []model.VideoEntry, log *zap.Logger) []model.VideoEntry {
	kept := make([]model.VideoEntry, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		if e.URL == "" {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	if dropped > 0 {
		log.Warn("dropped entries without a URL", zap.Int("count", dropped))
	}
	return kept
}

// DefaultJSONPath returns the default storage path: ~/.config/ytmark/videos.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ytmark", "videos.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage(log *zap.Logger) (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath, log)
	}

	jsonPath, err := DefaultJSONPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath, log), nil
}
