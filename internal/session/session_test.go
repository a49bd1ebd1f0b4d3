package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifr/internal/convo"
)

func TestLoadMissingFileReturnsEmptyState(t *testing.T) {
	store := AtPath(filepath.Join(t.TempDir(), "session.json"))
	assert.Empty(t, store.Load().Messages)
}

func TestAppendThenLoadRoundTrips(t *testing.T) {
	store := AtPath(filepath.Join(t.TempDir(), "sub", "session.json"))
	require.NoError(t, store.Append(convo.State{}, "hi", "hello"))

	state := store.Load()
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "hi", state.Messages[0].Content)
	assert.Equal(t, "hello", state.Messages[1].Content)
}

func TestLoadDiscardsStaleSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writeRaw(t, path, file{
		Version:     SchemaVersion,
		LastUpdated: time.Now().Add(-TTL - time.Minute),
		Messages:    []convo.Message{{Role: convo.RoleUser, Content: "old"}},
	})

	store := AtPath(path)
	assert.Empty(t, store.Load().Messages)
}

func TestLoadDiscardsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := AtPath(path)
	assert.Empty(t, store.Load().Messages)
}

func TestLoadDiscardsIncompatibleSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writeRaw(t, path, file{
		Version:     "2.0.0",
		LastUpdated: time.Now(),
		Messages:    []convo.Message{{Role: convo.RoleUser, Content: "future"}},
	})

	store := AtPath(path)
	assert.Empty(t, store.Load().Messages)
}

func TestClearIsIdempotent(t *testing.T) {
	store := AtPath(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, store.Clear())
	require.NoError(t, store.Append(convo.State{}, "a", "b"))
	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
	assert.Empty(t, store.Load().Messages)
}

func TestAppendLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	store := AtPath(filepath.Join(dir, "session.json"))
	require.NoError(t, store.Append(convo.State{}, "a", "b"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session.json", entries[0].Name())
}

func writeRaw(t *testing.T, path string, f file) {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
