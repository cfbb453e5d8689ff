package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		cursor:  0,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.cancelled = true
			return p, tea.Quit

		case "j", "down":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}

		case "enter":
			p.selected = true
			return p, tea.Quit
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Videos matching '%s' (%d results)", p.query, len(p.results))
	b.WriteString(headerStyle.Render(header) + "\n")

	for i, result := range p.results {
		line := result.Entry.Title
		if i == p.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(normalStyle.Render("  "+line) + "\n")
		}
		b.WriteString(urlStyle.Render("    "+result.Entry.URL) + "\n")
	}

	b.WriteString("\nj/k navigate · enter open · esc cancel\n")
	return b.String()
}

// Cancelled returns true if the picker was dismissed without a selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// SelectedEntry returns the chosen entry, or nil if nothing was selected.
func (p Picker) SelectedEntry() *model.VideoEntry {
	if !p.selected || p.cursor >= len(p.results) {
		return nil
	}
	return p.results[p.cursor].Entry
}
