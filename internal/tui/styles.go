package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	PageLabel    lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	URL          lipgloss.Style
	Date         lipgloss.Style
	Thumb        lipgloss.Style
	ThumbMissing lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A5050", Dark: "#A07070"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		PageLabel: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Thumb: lipgloss.NewStyle().
			Foreground(accent),

		ThumbMissing: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Status: lipgloss.NewStyle().
			Foreground(accent),

		Error: lipgloss.NewStyle().
			Foreground(warn),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}
