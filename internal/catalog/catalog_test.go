package catalog_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/ytmark/internal/catalog"
	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/page"
	"github.com/nikbrunner/ytmark/internal/storage"
)

func newTestService(t *testing.T) (*catalog.Service, storage.Storage) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videos.json")
	st := storage.NewJSONStorage(path, nil)
	return catalog.NewService(st, nil), st
}

func seed(t *testing.T, st storage.Storage, n int) {
	t.Helper()
	c := model.NewCollection()
	// Prepend in ascending order so "video n" ends up at index 0.
	for i := 1; i <= n; i++ {
		c.Prepend(model.VideoEntry{
			Title:   fmt.Sprintf("video %d", i),
			URL:     fmt.Sprintf("https://www.youtube.com/watch?v=id%08d", i),
			AddedAt: time.Now(),
		})
	}
	if err := st.Save(c); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
}

func TestService_Add(t *testing.T) {
	svc, st := newTestService(t)

	if err := svc.Add("Go Concurrency Patterns", "https://www.youtube.com/watch?v=f6kdp27TYZs"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", loaded.Len())
	}
	if loaded.Entries[0].Title != "Go Concurrency Patterns" {
		t.Errorf("unexpected title %q", loaded.Entries[0].Title)
	}
	if loaded.Entries[0].AddedAt.IsZero() {
		t.Error("AddedAt was not set")
	}
}

func TestService_AddPrependsNewest(t *testing.T) {
	svc, st := newTestService(t)

	if err := svc.Add("older", "https://youtu.be/aaaaaaaaaaa"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add("newer", "https://youtu.be/bbbbbbbbbbb"); err != nil {
		t.Fatal(err)
	}

	loaded, _ := st.Load()
	if loaded.Entries[0].Title != "newer" {
		t.Errorf("new entry not at index 0: %q", loaded.Entries[0].Title)
	}
}

func TestService_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		url     string
		wantErr error
	}{
		{name: "empty title", title: "", url: "https://youtu.be/dQw4w9WgXcQ", wantErr: catalog.ErrEmptyField},
		{name: "whitespace title", title: "   ", url: "https://youtu.be/dQw4w9WgXcQ", wantErr: catalog.ErrEmptyField},
		{name: "empty url", title: "Video", url: "", wantErr: catalog.ErrEmptyField},
		{name: "unparsable url", title: "Video", url: "https://vimeo.com/12345", wantErr: catalog.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t)

			err := svc.Add(tt.title, tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add = %v, want %v", err, tt.wantErr)
			}

			// A failed add must leave the collection unchanged.
			loaded, _ := st.Load()
			if loaded.Len() != 0 {
				t.Errorf("collection mutated on failed add: %d entries", loaded.Len())
			}
		})
	}
}

func TestService_AddTrimsInputs(t *testing.T) {
	svc, st := newTestService(t)

	if err := svc.Add("  padded title  ", "  https://youtu.be/dQw4w9WgXcQ  "); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	loaded, _ := st.Load()
	if loaded.Entries[0].Title != "padded title" {
		t.Errorf("title not trimmed: %q", loaded.Entries[0].Title)
	}
	if loaded.Entries[0].URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("url not trimmed: %q", loaded.Entries[0].URL)
	}
}

func TestService_Delete(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 3)

	// Index 1 of [video 3, video 2, video 1] is "video 2".
	if err := svc.Delete(1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	loaded, _ := st.Load()
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", loaded.Len())
	}
	for _, e := range loaded.Entries {
		if e.Title == "video 2" {
			t.Error("deleted entry still present")
		}
	}
}

func TestService_DeleteOutOfRange(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 2)

	if err := svc.Delete(5); err != nil {
		t.Fatalf("out-of-range delete returned error: %v", err)
	}

	loaded, _ := st.Load()
	if loaded.Len() != 2 {
		t.Errorf("out-of-range delete mutated collection: %d entries", loaded.Len())
	}
}

func TestService_List(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 25)

	p, cursor, err := svc.List(page.NewCursor())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if p.TotalPages != 3 || cursor.Page != 1 {
		t.Fatalf("expected page 1/3, got %d/%d", cursor.Page, p.TotalPages)
	}
	if len(p.Entries) != page.Size {
		t.Fatalf("expected %d entries, got %d", page.Size, len(p.Entries))
	}
	if p.Entries[0].Title != "video 25" {
		t.Errorf("first entry = %q, want %q", p.Entries[0].Title, "video 25")
	}
	if p.HasPrev || !p.HasNext {
		t.Errorf("page 1 flags: HasPrev=%v HasNext=%v", p.HasPrev, p.HasNext)
	}
}

func TestService_ListLastPage(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 25)

	p, _, err := svc.List(page.Cursor{Page: 3})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(p.Entries) != 5 {
		t.Fatalf("expected 5 entries on the last page, got %d", len(p.Entries))
	}
	if !p.HasPrev || p.HasNext {
		t.Errorf("last page flags: HasPrev=%v HasNext=%v", p.HasPrev, p.HasNext)
	}
}

func TestService_ListClampsStaleCursor(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 11)

	// Page 2 holds exactly one entry; deleting it leaves one page.
	if err := svc.Delete(10); err != nil {
		t.Fatal(err)
	}

	p, cursor, err := svc.List(page.Cursor{Page: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if cursor.Page != 1 {
		t.Errorf("cursor not clamped: page %d", cursor.Page)
	}
	if len(p.Entries) != 10 {
		t.Errorf("expected 10 entries after clamp, got %d", len(p.Entries))
	}
}

func TestService_ListEmptyCollection(t *testing.T) {
	svc, _ := newTestService(t)

	p, cursor, err := svc.List(page.Cursor{Page: 4})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if cursor.Page != 1 {
		t.Errorf("cursor not reset for empty collection: page %d", cursor.Page)
	}
	if p.TotalPages != 0 || p.HasPrev || p.HasNext {
		t.Errorf("empty collection flags: %+v", p.View)
	}
	if p.Label() != "0 items" {
		t.Errorf("empty label = %q", p.Label())
	}
}

func TestService_Import(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, 1)

	added, err := svc.Import([]model.VideoEntry{
		{Title: "good", URL: "https://youtu.be/dQw4w9WgXcQ", AddedAt: time.Now()},
		{Title: "not a video", URL: "https://example.com/page", AddedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 imported, got %d", added)
	}

	loaded, _ := st.Load()
	if loaded.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", loaded.Len())
	}
	if loaded.Entries[0].Title != "good" {
		t.Errorf("imported entry not at head: %q", loaded.Entries[0].Title)
	}
}
