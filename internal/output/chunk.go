package output

import (
	"io"
)

// minChunkSize is the target chunk size (spec.md §4.7: never write less
// than 8 KiB at a time, except for a final short remainder), chosen to
// keep a pipe reader (e.g. `less`) from stalling on tiny writes while
// still bounding memory for very large responses.
const minChunkSize = 8 * 1024

// writeChunked writes s in chunks of at least minChunkSize bytes,
// never splitting a CSI escape sequence (ESC '[' ... final-byte) across
// chunk boundaries, and always ends with a trailing newline.
func writeChunked(w io.Writer, s string) error {
	b := []byte(s)
	n := len(b)
	start := 0
	for start < n {
		end := start + minChunkSize
		if end >= n {
			end = n
		} else {
			end = safeBoundary(b, end)
		}
		if _, err := w.Write(b[start:end]); err != nil {
			return err
		}
		start = end
	}
	if n == 0 || b[n-1] != '\n' {
		_, err := w.Write([]byte{'\n'})
		return err
	}
	return nil
}

// safeBoundary nudges a candidate split point forward past any in-flight
// ANSI CSI escape sequence, so chunk boundaries never land inside one.
func safeBoundary(b []byte, at int) int {
	// Scan back to find the start of an escape sequence that might span `at`.
	escStart := -1
	for i := at - 1; i >= 0 && i > at-16; i-- {
		if b[i] == 0x1b {
			escStart = i
			break
		}
	}
	if escStart == -1 {
		return at
	}
	// The final byte comes after the two-byte introducer (ESC '['), whose
	// '[' itself lies in the final-byte range.
	first := escStart + 2
	// If the escape sequence already terminated before `at`, no adjustment needed.
	for i := first; i < at && i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return at
		}
	}
	// Escape sequence is still open at `at`; extend the chunk to its terminator.
	from := at
	if first > from {
		from = first
	}
	for i := from; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1
		}
	}
	return len(b)
}
