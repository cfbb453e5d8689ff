package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/ytmark/internal/catalog"
	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/page"
	"github.com/nikbrunner/ytmark/internal/search"
	"github.com/nikbrunner/ytmark/internal/thumbnail"
	"github.com/nikbrunner/ytmark/internal/videoid"
)

// Mode is the current interaction mode of the TUI.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeConfirmDelete
	ModeSearch
)

// ThumbStatus is the render state of one entry's thumbnail.
type ThumbStatus int

const (
	ThumbPending ThumbStatus = iota
	ThumbResolved
	ThumbMissing
)

// Thumb holds the resolution outcome for one video id.
type Thumb struct {
	Status ThumbStatus
	URL    string
}

// thumbMsg reports the outcome of one entry's thumbnail cascade.
// generation ties the probe to the page render that started it.
type thumbMsg struct {
	generation int
	id         string
	url        string
	ok         bool
}

// App is the main bubbletea model for the video list.
type App struct {
	service *catalog.Service
	prober  thumbnail.Prober
	keys    KeyMap
	styles  Styles
	openURL func(string)

	// Page state
	cursor page.Cursor
	pg     catalog.Page
	row    int // selected row within the page

	// Thumbnail state, keyed by video id
	thumbs     map[string]Thumb
	generation int

	// Modal state
	mode        Mode
	titleInput  textinput.Model
	urlInput    textinput.Model
	urlFocused  bool
	searchInput textinput.Model
	results     []search.Result
	resultIdx   int

	status  string
	formErr string

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Service *catalog.Service
	Prober  thumbnail.Prober // optional; nil disables probing
	Keys    *KeyMap          // optional, uses default if nil
	Styles  *Styles          // optional, uses default if nil
	OpenURL func(string)     // optional; nil disables browser opening
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = func(string) {}
	}

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = 120
	titleInput.Width = 48

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	urlInput.CharLimit = 256
	urlInput.Width = 48

	searchInput := textinput.New()
	searchInput.Placeholder = "Search titles..."
	searchInput.CharLimit = 64
	searchInput.Width = 40

	return App{
		service:     params.Service,
		prober:      params.Prober,
		keys:        keys,
		styles:      styles,
		openURL:     openURL,
		cursor:      page.NewCursor(),
		thumbs:      map[string]Thumb{},
		titleInput:  titleInput,
		urlInput:    urlInput,
		searchInput: searchInput,
		width:       80,
		height:      24,
	}
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Page returns the currently displayed page.
func (a App) Page() catalog.Page {
	return a.pg
}

// Row returns the selected row within the page.
func (a App) Row() int {
	return a.row
}

// ThumbFor returns the thumbnail state for a video id.
func (a App) ThumbFor(id string) Thumb {
	return a.thumbs[id]
}

// refreshMsg asks the app to reload its current page.
type refreshMsg struct{}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// refresh reloads the current page and starts thumbnail cascades for
// entries not yet resolved. Each refresh is a new generation; outcomes from
// earlier generations are dropped when they arrive late.
func (a App) refresh() (App, tea.Cmd) {
	pg, cursor, err := a.service.List(a.cursor)
	if err != nil {
		a.status = fmt.Sprintf("load failed: %v", err)
		return a, nil
	}
	a.pg = pg
	a.cursor = cursor

	if a.row >= len(a.pg.Entries) {
		a.row = len(a.pg.Entries) - 1
	}
	if a.row < 0 {
		a.row = 0
	}

	a.generation++
	var cmds []tea.Cmd
	if a.prober != nil {
		for _, entry := range a.pg.Entries {
			id, ok := videoid.Extract(entry.URL)
			if !ok {
				continue // stale entry whose id no longer parses; skipped, not removed
			}
			if t, done := a.thumbs[id]; done && t.Status != ThumbPending {
				continue
			}
			a.thumbs[id] = Thumb{Status: ThumbPending}
			cmds = append(cmds, a.probeCmd(a.generation, id))
		}
	}

	return a, tea.Batch(cmds...)
}

// probeCmd runs the full quality cascade for one video id off the event
// loop and reports the outcome as a message.
func (a App) probeCmd(generation int, id string) tea.Cmd {
	prober := a.prober
	return func() tea.Msg {
		url, err := thumbnail.Resolve(context.Background(), prober, id)
		return thumbMsg{generation: generation, id: id, url: url, ok: err == nil}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return a.refreshModel()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case thumbMsg:
		// Guard against callbacks for a page that is no longer shown.
		if msg.generation != a.generation {
			return a, nil
		}
		if msg.ok {
			a.thumbs[msg.id] = Thumb{Status: ThumbResolved, URL: msg.url}
		} else {
			a.thumbs[msg.id] = Thumb{Status: ThumbMissing}
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeAdd:
			return a.updateAdd(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeSearch:
			return a.updateSearch(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// updateNormal handles keys in the browse mode.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.pg.Entries) > 0 && a.row < len(a.pg.Entries)-1 {
			a.row++
		}

	case key.Matches(msg, a.keys.Up):
		if a.row > 0 {
			a.row--
		}

	case key.Matches(msg, a.keys.NextPage):
		next := a.cursor.Next(a.pg.TotalPages)
		if next != a.cursor {
			a.cursor = next
			a.row = 0
			return a.refreshModel()
		}

	case key.Matches(msg, a.keys.PrevPage):
		prev := a.cursor.Prev()
		if prev != a.cursor {
			a.cursor = prev
			a.row = 0
			return a.refreshModel()
		}

	case key.Matches(msg, a.keys.Refresh):
		return a.refreshModel()

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		a.formErr = ""
		a.titleInput.Reset()
		a.urlInput.Reset()
		a.urlFocused = false
		a.titleInput.Focus()
		a.urlInput.Blur()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if len(a.pg.Entries) > 0 {
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.Reset()
		a.searchInput.Focus()
		a.results = nil
		a.resultIdx = 0
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Open):
		if entry := a.selectedEntry(); entry != nil {
			a.openURL(entry.URL)
			a.status = "opened " + entry.Title
		}

	case key.Matches(msg, a.keys.Play):
		if entry := a.selectedEntry(); entry != nil {
			if id, ok := videoid.Extract(entry.URL); ok {
				a.openURL(videoid.EmbedURL(id))
				a.status = "playing " + entry.Title
			}
		}

	case key.Matches(msg, a.keys.YankURL):
		if entry := a.selectedEntry(); entry != nil {
			if err := clipboard.WriteAll(entry.URL); err != nil {
				a.status = "clipboard unavailable"
			} else {
				a.status = "URL copied"
			}
		}
	}

	return a, nil
}

// updateAdd handles keys in the add-video form.
func (a App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "tab", "shift+tab":
		a.urlFocused = !a.urlFocused
		if a.urlFocused {
			a.titleInput.Blur()
			a.urlInput.Focus()
		} else {
			a.urlInput.Blur()
			a.titleInput.Focus()
		}
		return a, textinput.Blink

	case "enter":
		if !a.urlFocused {
			// Move on to the URL field first.
			a.urlFocused = true
			a.titleInput.Blur()
			a.urlInput.Focus()
			return a, textinput.Blink
		}
		err := a.service.Add(a.titleInput.Value(), a.urlInput.Value())
		switch {
		case errors.Is(err, catalog.ErrEmptyField):
			a.formErr = "Both title and URL are required."
			return a, nil
		case errors.Is(err, catalog.ErrInvalidURL):
			a.formErr = "That doesn't look like a video URL."
			return a, nil
		case err != nil:
			a.formErr = fmt.Sprintf("Could not save: %v", err)
			return a, nil
		}
		a.mode = ModeNormal
		a.status = "video added"
		// New entries go to the head, so jump back to the first page.
		a.cursor = page.NewCursor()
		a.row = 0
		return a.refreshModel()
	}

	var cmd tea.Cmd
	if a.urlFocused {
		a.urlInput, cmd = a.urlInput.Update(msg)
	} else {
		a.titleInput, cmd = a.titleInput.Update(msg)
	}
	return a, cmd
}

// updateConfirmDelete handles the delete confirmation prompt. The catalog
// delete only runs after an explicit yes.
func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.mode = ModeNormal
		index := a.absoluteIndex()
		if index < 0 {
			return a, nil
		}
		if err := a.service.Delete(index); err != nil {
			a.status = fmt.Sprintf("delete failed: %v", err)
			return a, nil
		}
		a.status = "video deleted"
		return a.refreshModel()

	case "n", "N", "esc", "q":
		a.mode = ModeNormal
	}
	return a, nil
}

// updateSearch handles keys in the search overlay.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "down", "ctrl+n":
		if a.resultIdx < len(a.results)-1 {
			a.resultIdx++
		}
		return a, nil

	case "up", "ctrl+p":
		if a.resultIdx > 0 {
			a.resultIdx--
		}
		return a, nil

	case "enter":
		if a.resultIdx < len(a.results) {
			target := a.results[a.resultIdx].Index
			a.cursor = page.Cursor{Page: target/page.Size + 1}
			a.row = target % page.Size
			a.mode = ModeNormal
			return a.refreshModel()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	collection, err := a.service.Entries()
	if err == nil {
		a.results = search.FuzzySearch(collection, a.searchInput.Value())
		if a.resultIdx >= len(a.results) {
			a.resultIdx = 0
		}
	}
	return a, cmd
}

// refreshModel wraps refresh for use from Update.
func (a App) refreshModel() (tea.Model, tea.Cmd) {
	next, cmd := a.refresh()
	return next, cmd
}

// selectedEntry returns the entry under the row cursor, or nil.
func (a App) selectedEntry() *model.VideoEntry {
	if a.row < 0 || a.row >= len(a.pg.Entries) {
		return nil
	}
	return &a.pg.Entries[a.row]
}

// absoluteIndex translates the visible row back to its index in the full,
// unpaginated collection.
func (a App) absoluteIndex() int {
	if a.selectedEntry() == nil {
		return -1
	}
	return a.pg.Start + a.row
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
