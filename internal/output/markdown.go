package output

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown converts Markdown to ANSI-styled terminal text, matching
// the terminal's color profile automatically.
func RenderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
