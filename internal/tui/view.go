package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/ytmark/internal/videoid"
)

// renderView creates the complete view for the current mode.
func (a App) renderView() string {
	var body string
	switch a.mode {
	case ModeAdd:
		body = a.renderAddModal()
	case ModeConfirmDelete:
		body = a.renderConfirmModal()
	case ModeSearch:
		body = a.renderSearchOverlay()
	default:
		body = a.renderList()
	}

	content := a.styles.App.Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderList renders the paginated video list.
func (a App) renderList() string {
	var b strings.Builder

	header := a.styles.Title.Render("ytmark") + "  " +
		a.styles.PageLabel.Render(a.pg.Label())
	b.WriteString(header + "\n\n")

	if len(a.pg.Entries) == 0 {
		b.WriteString(a.styles.Empty.Render("No videos saved yet. Press 'a' to add one.") + "\n")
	}

	maxTitle := a.width - 8
	if maxTitle < 16 {
		maxTitle = 16
	}

	for i, entry := range a.pg.Entries {
		title := truncate(entry.Title, maxTitle)
		if i == a.row {
			b.WriteString(a.styles.ItemSelected.Render(title) + "\n")
		} else {
			b.WriteString(a.styles.Item.Render(title) + "\n")
		}

		detail := "  " + a.styles.URL.Render(truncate(entry.URL, maxTitle-10)) +
			"  " + a.styles.Date.Render(entry.AddedAt.Format("2006-01-02")) +
			"  " + a.renderThumb(entry.URL, entry.Title)
		b.WriteString(detail + "\n")
	}

	b.WriteString(a.renderFooter())
	return b.String()
}

// renderThumb renders the thumbnail resolution state for one entry.
func (a App) renderThumb(url, title string) string {
	id, ok := videoid.Extract(url)
	if !ok {
		return a.styles.ThumbMissing.Render("[unrecognized link]")
	}

	switch t := a.thumbs[id]; t.Status {
	case ThumbResolved:
		return a.styles.Thumb.Render("[" + qualityOf(t.URL) + "]")
	case ThumbMissing:
		// Terminal cascade state: describe the absence instead of showing
		// a broken link.
		return a.styles.ThumbMissing.Render("[no preview for " + truncate(title, 20) + "]")
	default:
		return a.styles.ThumbMissing.Render("[probing...]")
	}
}

// renderFooter renders the status line, page controls and key help.
func (a App) renderFooter() string {
	var b strings.Builder

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status) + "\n")
	}

	prev := "h prev"
	next := "l next"
	if !a.pg.HasPrev {
		prev = ""
	}
	if !a.pg.HasNext {
		next = ""
	}
	nav := strings.TrimSpace(prev + "  " + next)

	hints := []string{"j/k move", "o open", "p play", "a add", "d delete", "/ search", "Y yank", "q quit"}
	if nav != "" {
		hints = append([]string{nav}, hints...)
	}
	b.WriteString(a.styles.Help.Render(strings.Join(hints, " · ")))

	return b.String()
}

// renderAddModal renders the add-video form.
func (a App) renderAddModal() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Add video") + "\n\n")
	b.WriteString("Title\n" + a.titleInput.View() + "\n\n")
	b.WriteString("URL\n" + a.urlInput.View() + "\n")

	if a.formErr != "" {
		b.WriteString("\n" + a.styles.Error.Render(a.formErr) + "\n")
	}

	b.WriteString(a.styles.Help.Render("enter confirm · tab switch field · esc cancel"))
	return a.styles.Modal.Render(b.String())
}

// renderConfirmModal renders the delete confirmation prompt.
func (a App) renderConfirmModal() string {
	entry := a.selectedEntry()
	if entry == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Delete video?") + "\n\n")
	b.WriteString(truncate(entry.Title, 60) + "\n")
	b.WriteString(a.styles.URL.Render(truncate(entry.URL, 60)) + "\n\n")
	b.WriteString(a.styles.Help.Render("y delete · n cancel"))

	return a.styles.Modal.Render(b.String())
}

// renderSearchOverlay renders the fuzzy search input and results.
func (a App) renderSearchOverlay() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Search") + "\n\n")
	b.WriteString(a.searchInput.View() + "\n\n")

	if len(a.results) == 0 && a.searchInput.Value() != "" {
		b.WriteString(a.styles.Empty.Render("No matches.") + "\n")
	}

	shown := a.results
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, r := range shown {
		line := truncate(r.Entry.Title, 60)
		if i == a.resultIdx {
			b.WriteString(a.styles.ItemSelected.Render(line) + "\n")
		} else {
			b.WriteString(a.styles.Item.Render(line) + "\n")
		}
	}

	b.WriteString(a.styles.Help.Render("enter jump to video · esc cancel"))
	return b.String()
}

// qualityOf extracts the quality variant name from a resolved thumbnail URL.
func qualityOf(url string) string {
	base := url
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".jpg")
}

// truncate shortens text to maxWidth runes with an ellipsis.
func truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	if maxWidth <= 1 {
		return "…"
	}
	return string(runes[:maxWidth-1]) + "…"
}
