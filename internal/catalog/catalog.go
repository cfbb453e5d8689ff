// Package catalog implements add/delete/list over the persisted video
// collection. Every mutation is a full load → mutate → save cycle; the
// service never caches the collection between calls, so the last writer
// wins under concurrent instances.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/page"
	"github.com/nikbrunner/ytmark/internal/storage"
	"github.com/nikbrunner/ytmark/internal/videoid"
)

// Validation errors returned by Add. Surfaced inline near the input form,
// never as a crash.
var (
	ErrEmptyField = errors.New("title and URL must not be empty")
	ErrInvalidURL = errors.New("no video id found in URL")
)

// Page is one page of the collection plus its pagination metadata.
type Page struct {
	page.View
	Entries []model.VideoEntry
}

// Service composes storage and id extraction into the catalog operations.
type Service struct {
	storage storage.Storage
	log     *zap.Logger
}

// NewService creates a Service over the given storage backend.
func NewService(st storage.Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{storage: st, log: log}
}

// Add validates the inputs, prepends a new entry and persists the
// collection. Both inputs are trimmed first; an empty field or a URL
// without an extractable video id fails validation and leaves the
// collection untouched. After a successful Add the caller should reset its
// page cursor to 1 so the new entry is visible without navigation.
func (s *Service) Add(title, url string) error {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)

	if title == "" || url == "" {
		return ErrEmptyField
	}
	if _, ok := videoid.Extract(url); !ok {
		return ErrInvalidURL
	}

	collection, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	collection.Prepend(model.NewVideoEntry(model.NewVideoEntryParams{
		Title: title,
		URL:   url,
	}))

	if err := s.storage.Save(collection); err != nil {
		s.log.Error("could not persist collection", zap.Error(err))
		return fmt.Errorf("save collection: %w", err)
	}

	s.log.Info("video added", zap.String("title", title), zap.Int("count", collection.Len()))
	return nil
}

// Delete removes the entry at the given absolute index in the full,
// unpaginated collection and persists. Callers translating a visible row
// must map it back to its absolute index first, and must confirm with the
// user before calling. Out-of-range indexes are a no-op.
func (s *Service) Delete(index int) error {
	collection, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	if index < 0 || index >= collection.Len() {
		return nil
	}
	collection.RemoveAt(index)

	if err := s.storage.Save(collection); err != nil {
		s.log.Error("could not persist collection", zap.Error(err))
		return fmt.Errorf("save collection: %w", err)
	}

	s.log.Info("video deleted", zap.Int("index", index), zap.Int("count", collection.Len()))
	return nil
}

// List loads the collection fresh and returns the page under the cursor,
// clamping the cursor down when the collection shrank underneath it (a
// delete, or another instance writing). The returned cursor is the position
// the caller should carry forward.
func (s *Service) List(cursor page.Cursor) (Page, page.Cursor, error) {
	collection, err := s.storage.Load()
	if err != nil {
		return Page{}, cursor, fmt.Errorf("load collection: %w", err)
	}

	view := page.Paginate(collection.Len(), page.Size, cursor.Page)
	if cursor.Page > view.TotalPages {
		cursor = cursor.ClampTo(view.TotalPages)
		view = page.Paginate(collection.Len(), page.Size, cursor.Page)
	}

	return Page{
		View:    view,
		Entries: collection.Slice(view.Start, view.End),
	}, cursor, nil
}

// Entries returns the full collection, newest first.
func (s *Service) Entries() (*model.Collection, error) {
	return s.storage.Load()
}

// Import prepends the given entries to the collection in one persisted
// write and returns how many were added. Entries without an extractable
// video id are skipped.
func (s *Service) Import(entries []model.VideoEntry) (int, error) {
	collection, err := s.storage.Load()
	if err != nil {
		return 0, fmt.Errorf("load collection: %w", err)
	}

	// Walk backwards so the first imported entry ends up newest.
	added := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if _, ok := videoid.Extract(entries[i].URL); !ok {
			continue
		}
		collection.Prepend(entries[i])
		added++
	}

	if added == 0 {
		return 0, nil
	}

	if err := s.storage.Save(collection); err != nil {
		s.log.Error("could not persist collection", zap.Error(err))
		return 0, fmt.Errorf("save collection: %w", err)
	}

	s.log.Info("videos imported", zap.Int("added", added))
	return added, nil
}
