// Package envelope wraps the three kinds of context material aifr can
// attach to a prompt (files, console output, stdin) in byte-exact marker
// blocks the LLM's system prompt teaches it to expect.
package envelope

import "strings"

const (
	fileStart    = "===FILE_START==="
	fileEnd      = "===FILE_END==="
	consoleStart = "===CONSOLE_START==="
	consoleEnd   = "===CONSOLE_END==="
	stdinStart   = "===STDIN_START==="
	stdinEnd     = "===STDIN_END==="
)

// File wraps file content in the byte-exact FILE_START/FILE_END markers.
// The path itself is not part of the marker line — it is prepended as
// plain prompt text, mirroring the original `Treść pliku {name}:` line —
// so the wire contract with the model stays exactly what it says.
func File(path, content string) string {
	return "Treść pliku " + path + ":\n" + wrap(fileStart, content, fileEnd)
}

// Console wraps captured shell command output.
func Console(content string) string {
	return wrap(consoleStart, content, consoleEnd)
}

// Stdin wraps piped standard input.
func Stdin(content string) string {
	return wrap(stdinStart, content, stdinEnd)
}

func wrap(start, content, end string) string {
	var b strings.Builder
	b.WriteString(start)
	b.WriteByte('\n')
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(end)
	return b.String()
}

// Join concatenates envelope blocks (and any other prompt text) with a
// blank line between each, the assembly order spec.md §4.6 fixes: the
// user's own prompt text first, then file envelopes, then console, then
// stdin.
func Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
