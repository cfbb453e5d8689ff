package tui_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/ytmark/internal/catalog"
	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/storage"
	"github.com/nikbrunner/ytmark/internal/tui"
)

// okProber resolves every cascade at the first quality.
type okProber struct{}

func (okProber) Probe(context.Context, string) bool { return true }

func newTestApp(t *testing.T, entries int) (tui.App, *catalog.Service) {
	t.Helper()

	st := storage.NewJSONStorage(filepath.Join(t.TempDir(), "videos.json"), nil)
	c := model.NewCollection()
	for i := 1; i <= entries; i++ {
		c.Prepend(model.VideoEntry{
			Title:   fmt.Sprintf("video %d", i),
			URL:     fmt.Sprintf("https://www.youtube.com/watch?v=id%08d", i),
			AddedAt: time.Now(),
		})
	}
	assert.NilError(t, st.Save(c))

	svc := catalog.NewService(st, nil)
	app := tui.NewApp(tui.AppParams{Service: svc, Prober: okProber{}})
	return loaded(t, app), svc
}

// loaded runs the initial refresh cycle the way bubbletea would.
func loaded(t *testing.T, app tui.App) tui.App {
	t.Helper()
	cmd := app.Init()
	m, _ := app.Update(cmd())
	return m.(tui.App)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, app tui.App, keys ...string) tui.App {
	t.Helper()
	for _, k := range keys {
		m, cmd := app.Update(keyMsg(k))
		app = m.(tui.App)
		// Run any follow-up message (refresh results, probe outcomes).
		if cmd != nil {
			if msg := cmd(); msg != nil {
				m, _ := app.Update(msg)
				app = m.(tui.App)
			}
		}
	}
	return app
}

func TestApp_LoadsFirstPage(t *testing.T) {
	app, _ := newTestApp(t, 25)

	pg := app.Page()
	assert.Equal(t, pg.Current, 1)
	assert.Equal(t, pg.TotalPages, 3)
	assert.Equal(t, len(pg.Entries), 10)
	assert.Equal(t, pg.Entries[0].Title, "video 25")
}

func TestApp_RowNavigation(t *testing.T) {
	app, _ := newTestApp(t, 5)

	app = press(t, app, "j", "j")
	assert.Equal(t, app.Row(), 2)

	app = press(t, app, "k")
	assert.Equal(t, app.Row(), 1)

	// Up at the first row stays put.
	app = press(t, app, "k", "k", "k")
	assert.Equal(t, app.Row(), 0)
}

func TestApp_PageNavigation(t *testing.T) {
	app, _ := newTestApp(t, 25)

	// Prev on the first page is a no-op.
	app = press(t, app, "h")
	assert.Equal(t, app.Page().Current, 1)

	app = press(t, app, "l")
	assert.Equal(t, app.Page().Current, 2)

	app = press(t, app, "l", "l", "l")
	// Clamped at the last page.
	assert.Equal(t, app.Page().Current, 3)
	assert.Equal(t, len(app.Page().Entries), 5)
}

func TestApp_AddFlow(t *testing.T) {
	app, svc := newTestApp(t, 0)

	app = press(t, app, "a")
	assert.Equal(t, app.Mode(), tui.ModeAdd)

	// Fill title, move to URL, fill URL, submit.
	for _, r := range "My Video" {
		app = press(t, app, string(r))
	}
	app = press(t, app, "tab")
	for _, r := range "https://youtu.be/dQw4w9WgXcQ" {
		app = press(t, app, string(r))
	}
	app = press(t, app, "enter")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Page().Current, 1)
	assert.Equal(t, app.Page().Entries[0].Title, "My Video")

	collection, err := svc.Entries()
	assert.NilError(t, err)
	assert.Equal(t, collection.Len(), 1)
}

func TestApp_AddEmptyFormShowsInlineError(t *testing.T) {
	app, svc := newTestApp(t, 0)

	// First enter moves focus to the URL field, second submits the empty
	// form. The modal stays open with an inline error.
	app = press(t, app, "a", "enter", "enter")
	assert.Equal(t, app.Mode(), tui.ModeAdd)
	assert.Assert(t, strings.Contains(app.View(), "required"))

	collection, err := svc.Entries()
	assert.NilError(t, err)
	assert.Equal(t, collection.Len(), 0)
}

func TestApp_AddRejectsNonVideoURL(t *testing.T) {
	app, svc := newTestApp(t, 0)

	app = press(t, app, "a")
	for _, r := range "A Page" {
		app = press(t, app, string(r))
	}
	app = press(t, app, "tab")
	for _, r := range "https://example.com/x" {
		app = press(t, app, string(r))
	}
	app = press(t, app, "enter")

	assert.Equal(t, app.Mode(), tui.ModeAdd)
	collection, err := svc.Entries()
	assert.NilError(t, err)
	assert.Equal(t, collection.Len(), 0)
}

func TestApp_DeleteRequiresConfirmation(t *testing.T) {
	app, svc := newTestApp(t, 3)

	app = press(t, app, "d")
	assert.Equal(t, app.Mode(), tui.ModeConfirmDelete)

	// Declining leaves the collection untouched.
	app = press(t, app, "n")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	collection, err := svc.Entries()
	assert.NilError(t, err)
	assert.Equal(t, collection.Len(), 3)

	// Confirming deletes the selected row.
	app = press(t, app, "j", "d", "y")
	collection, err = svc.Entries()
	assert.NilError(t, err)
	assert.Equal(t, collection.Len(), 2)
	for _, e := range collection.Entries {
		assert.Assert(t, e.Title != "video 2", "selected entry should be gone")
	}
}

func TestApp_DeleteLastEntryOnLastPageClampsPage(t *testing.T) {
	app, _ := newTestApp(t, 11)

	app = press(t, app, "l")
	assert.Equal(t, app.Page().Current, 2)
	assert.Equal(t, len(app.Page().Entries), 1)

	app = press(t, app, "d", "y")
	assert.Equal(t, app.Page().Current, 1)
	assert.Equal(t, len(app.Page().Entries), 10)
}

func TestApp_StaleThumbOutcomeIsDropped(t *testing.T) {
	app, _ := newTestApp(t, 25)

	// Harvest a probe outcome for page 1, then navigate away before
	// delivering it. The late callback must not land.
	cmd := app.Init()
	m, batch := app.Update(cmd())
	app = m.(tui.App)
	assert.Assert(t, batch != nil)

	staleMsgs := collectMsgs(batch)
	app = press(t, app, "l")

	for _, msg := range staleMsgs {
		m, _ := app.Update(msg)
		app = m.(tui.App)
	}

	// The stale delivery must not have resolved anything out of band: the
	// first page-1 entry ("video 25") is still unresolved.
	assert.Equal(t, app.Page().Current, 2)
	assert.Equal(t, app.ThumbFor("id00000025").Status, tui.ThumbPending)
}

// collectMsgs runs a command tree and gathers all produced messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestApp_ViewEmptyCollection(t *testing.T) {
	app, _ := newTestApp(t, 0)

	view := app.View()
	assert.Assert(t, strings.Contains(view, "0 items"))
	assert.Assert(t, strings.Contains(view, "No videos saved yet"))
	// Neither nav control is offered for an empty list.
	assert.Assert(t, !strings.Contains(view, "h prev"))
	assert.Assert(t, !strings.Contains(view, "l next"))
}

func TestApp_ViewShowsResolvedThumbQuality(t *testing.T) {
	app, _ := newTestApp(t, 1)

	// okProber resolves at the highest quality on the refresh done by
	// newTestApp via Init.
	cmd := app.Init()
	m, batch := app.Update(cmd())
	app = m.(tui.App)
	for _, msg := range collectMsgs(batch) {
		m, _ := app.Update(msg)
		app = m.(tui.App)
	}

	assert.Assert(t, strings.Contains(app.View(), "maxresdefault"))
}
