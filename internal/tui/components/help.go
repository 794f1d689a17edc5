package components

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/glamour"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// HelpSection is a titled group of bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpMarkdown lays the sections out as markdown tables
func HelpMarkdown(sections []HelpSection) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.Title)
		for _, binding := range s.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nMoves show on the board right away and turn back if the service rejects them.\n")
	return b.String()
}

// RenderHelp renders the help sections for the given width, falling back
// to the raw markdown when glamour fails
func RenderHelp(sections []HelpSection, width int) string {
	md := HelpMarkdown(sections)
	renderer, err := getRenderer(width)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
