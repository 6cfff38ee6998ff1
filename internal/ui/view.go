package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/faizmokh/gideon/internal/journal"
)

const (
	appTitle    = "Gideon"
	loadingText = "Thinking..."
	copyHint    = "c copy"
	copiedText  = "Copied!"
)

// View renders the frame.
func (m Model) View() string {
	p := paletteFor(m.mode)

	var b strings.Builder
	b.WriteString(m.headerView(p))
	b.WriteString("\n\n")
	b.WriteString(m.stripView(p))
	b.WriteByte('\n')
	b.WriteString(p.rule.Render(strings.Repeat("─", max(m.width-1, 1))))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteByte(' ')
		b.WriteString(p.muted.Render(loadingText))
		b.WriteByte('\n')
	} else {
		b.WriteString(m.viewport.View())
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if status := m.statusView(p); status != "" {
		b.WriteString(status)
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView(p palette) string {
	title := p.title.Render(appTitle)
	date := p.text.Render(m.selected.Format("Monday, 02 January 2006"))
	mode := p.status.Render(m.mode.String())
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(date)-lipgloss.Width(mode)-2, 1)
	return title + " " + date + strings.Repeat(" ", gap) + mode
}

// stripView lays out the navigation window, highlighting the selected date.
func (m Model) stripView(p palette) string {
	days := m.Window()
	cells := make([]string, 0, len(days))
	for i, day := range days {
		style := p.day
		if i == journal.WindowRadius {
			style = p.selected
		}
		cells = append(cells, style.Render(dayLabel(day)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func dayLabel(day time.Time) string {
	return fmt.Sprintf("%s\n%d", day.Format("Mon"), day.Day())
}

func (m Model) statusView(p palette) string {
	switch {
	case m.statusLine != "":
		return wordwrap.String(p.status.Render(m.statusLine), m.width)
	case m.copied:
		return p.copied.Render(copiedText)
	case !m.loading && m.entry != nil:
		return p.status.Render(copyHint)
	default:
		return ""
	}
}

func (m Model) placeholder() string {
	p := paletteFor(m.mode)
	text := wordwrap.String(journal.AbsentMessage(m.selected), m.contentWidth())
	return p.muted.Render(text) + "\n\n" + p.status.Render(journal.AbsentGlyph)
}
