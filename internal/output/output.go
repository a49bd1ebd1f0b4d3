// Package output renders a provider's response to stdout, aware of
// whether stdout is a pipe or a terminal.
package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the given file descriptor is an interactive
// terminal, used to decide whether to colorize Markdown or print raw text.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes a model response to a writer, chunked and optionally
// Markdown-colorized.
type Renderer struct {
	w        io.Writer
	colorize bool
}

// New builds a Renderer. colorize should be true only when writing to a
// terminal and the caller has not passed --raw.
func New(w io.Writer, colorize bool) *Renderer {
	return &Renderer{w: w, colorize: colorize}
}

// Write renders text to the underlying writer. When colorize is set, text
// is passed through the Markdown colorizer first; the result is always
// chunk-written so a slow pipe reader never sees a torn ANSI escape.
func (r *Renderer) Write(text string) error {
	out := text
	if r.colorize {
		rendered, err := RenderMarkdown(text)
		if err == nil {
			out = rendered
		}
	}
	return writeChunked(r.w, out)
}
