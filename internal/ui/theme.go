package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/gideon/internal/render"
)

// Mode is the light/dark presentation preference.
type Mode uint8

const (
	ModeLight Mode = iota
	ModeDark
)

// ParseMode maps "dark" to ModeDark and anything else to ModeLight.
func ParseMode(name string) Mode {
	if name == "dark" {
		return ModeDark
	}
	return ModeLight
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// RenderStyle is the markdown stylesheet matching the mode.
func (m Mode) RenderStyle() render.Style {
	if m == ModeDark {
		return render.StyleDark
	}
	return render.StyleLight
}

const accent = lipgloss.Color("#D96C5B")

type palette struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	day      lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	copied   lipgloss.Style
	rule     lipgloss.Style
}

func paletteFor(mode Mode) palette {
	bg, fg, muted := lipgloss.Color("#F9F9F7"), lipgloss.Color("#3A3A3A"), lipgloss.Color("#8A8A8A")
	if mode == ModeDark {
		bg, fg, muted = lipgloss.Color("#1A1A1A"), lipgloss.Color("#EAEAEA"), lipgloss.Color("#6B6B6B")
	}

	cell := lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Padding(0, 1)
	return palette{
		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		text:     lipgloss.NewStyle().Foreground(fg),
		muted:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		day:      cell.Foreground(muted),
		selected: cell.Bold(true).Foreground(bg).Background(fg),
		status:   lipgloss.NewStyle().Foreground(muted),
		copied:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		rule:     lipgloss.NewStyle().Foreground(muted),
	}
}
