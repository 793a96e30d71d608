package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats a topic's content for the terminal
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer prints topics unchanged
type PlainRenderer struct{}

// Render returns content as is
func (PlainRenderer) Render(content, _ string) string {
	return content
}

// MarkdownRenderer renders .md topics with glamour. Other extensions pass
// through untouched.
type MarkdownRenderer struct {
	// Style is a glamour style name or path; empty picks one for the terminal
	Style string
	// Width wraps output; zero keeps glamour's default
	Width int
}

// Render converts markdown for terminal display, falling back to the raw
// text when glamour fails
func (r MarkdownRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
