// Package render turns entry markdown into terminal output.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Style selects the glamour stylesheet.
type Style string

const (
	StyleLight Style = "light"
	StyleDark  Style = "dark"
	// StylePlain emits no escape sequences; used when output is not a terminal.
	StylePlain Style = "notty"
)

const minWrap = 20

// Renderer renders markdown through glamour, reusing a TermRenderer per
// style and wrap width.
type Renderer struct {
	mu    sync.Mutex
	cache map[rendererKey]*glamour.TermRenderer
}

type rendererKey struct {
	style Style
	wrap  int
}

// New returns an empty Renderer.
func New() *Renderer {
	return &Renderer{cache: map[rendererKey]*glamour.TermRenderer{}}
}

// Markdown renders content with style, wrapping at width columns.
func (r *Renderer) Markdown(content string, style Style, width int) (string, error) {
	tr, err := r.termRenderer(style, width)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func (r *Renderer) termRenderer(style Style, width int) (*glamour.TermRenderer, error) {
	if width < minWrap {
		width = minWrap
	}
	switch style {
	case StyleLight, StyleDark, StylePlain:
	default:
		style = StyleLight
	}

	key := rendererKey{style: style, wrap: width}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.cache[key]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.cache[key] = tr
	return tr, nil
}
