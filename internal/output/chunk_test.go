package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChunkedAppendsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunked(&buf, "hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriteChunkedPreservesExistingNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunked(&buf, "hello\n"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriteChunkedNeverSplitsEscapeSequence(t *testing.T) {
	// Build a string where an ANSI escape straddles the default chunk boundary.
	padding := strings.Repeat("x", minChunkSize-2)
	esc := "\x1b[31mred\x1b[0m"
	s := padding + esc

	var buf bytes.Buffer
	require.NoError(t, writeChunked(&buf, s))
	assert.Equal(t, s+"\n", buf.String())

	var rec recordingWriter
	require.NoError(t, writeChunked(&rec, s))
	require.NotEmpty(t, rec.writes)
	assert.Equal(t, padding+"\x1b[31m", string(rec.writes[0]))
}

// recordingWriter keeps each Write call's bytes separately, so tests can
// see where chunk boundaries fell.
type recordingWriter struct {
	writes [][]byte
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestWriteChunkedRoundTripsLargeInput(t *testing.T) {
	s := strings.Repeat("word ", 5000)
	var buf bytes.Buffer
	require.NoError(t, writeChunked(&buf, s))
	assert.Equal(t, s+"\n", buf.String())
}
