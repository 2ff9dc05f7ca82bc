package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders instruction text with glamour, keeping one renderer per
// wrap width.
type Markdown struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	style     string
}

// NewMarkdown creates a renderer using the terminal's auto style.
func NewMarkdown() *Markdown {
	return &Markdown{renderers: make(map[int]*glamour.TermRenderer)}
}

// NewPlainMarkdown creates a renderer with the colourless "notty" style,
// for tests and non-terminal output.
func NewPlainMarkdown() *Markdown {
	return &Markdown{renderers: make(map[int]*glamour.TermRenderer), style: "notty"}
}

// Render returns md formatted for the given width. When rendering fails the
// raw text is returned.
func (m *Markdown) Render(md string, width int) string {
	if width < 20 {
		width = 80
	}

	m.mu.Lock()
	r, ok := m.renderers[width]
	if !ok {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if m.style != "" {
			opts = append(opts, glamour.WithStandardStyle(m.style))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
		var err error
		r, err = glamour.NewTermRenderer(opts...)
		if err != nil {
			m.mu.Unlock()
			return md
		}
		m.renderers[width] = r
	}
	m.mu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
