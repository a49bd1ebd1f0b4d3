// Package session persists conversation state across process invocations,
// per SPEC_FULL.md §4.5: a JSON file under the user cache directory,
// atomic rewrite, TTL-based staleness, and a semver-guarded schema
// version, grounded on original_source/aifr/session_store.py.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aifr/internal/convo"
	"aifr/internal/logger"
	"aifr/internal/version"
)

// TTL is the maximum age of a session file before it is treated as stale
// and discarded, per spec.md §4.5 (4h, overriding the original Python
// implementation's 2h).
const TTL = 4 * time.Hour

// SchemaVersion is written into every session file this binary produces.
const SchemaVersion = "1.0.0"

// file is the on-disk representation of a session.
type file struct {
	Version     string          `json:"version"`
	LastUpdated time.Time       `json:"last_updated"`
	Messages    []convo.Message `json:"messages"`
}

// Store resolves and persists a single session file.
type Store struct {
	path string
}

// AtPath builds a Store pointed directly at path, bypassing UserCacheDir
// resolution; used by tests.
func AtPath(path string) *Store {
	return &Store{path: path}
}

// Default resolves the default session location: <user-cache>/aifr/session.json.
func Default() (*Store, error) {
	return Named("")
}

// Named resolves <user-cache>/aifr/sessions/<name>.json, or the default
// session.json when name is empty, per spec.md's `--session <name>` flag.
func Named(name string) (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("session: resolve cache dir: %w", err)
	}
	var path string
	if name == "" {
		path = filepath.Join(cacheDir, "aifr", "session.json")
	} else {
		path = filepath.Join(cacheDir, "aifr", "sessions", name+".json")
	}
	return &Store{path: path}, nil
}

// Load returns the persisted ConversationState, or an empty state on a
// missing file, malformed JSON, stale TTL, or incompatible schema
// version. Malformed JSON and an incompatible schema version each produce
// a stderr notice; a missing or stale file is expected steady-state
// behavior and is discarded silently.
func (s *Store) Load() convo.State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return convo.State{}
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		logger.Warn("discarding malformed session file", "path", s.path, "error", err)
		return convo.State{}
	}

	if f.Version != "" && !version.SupportsSchema(f.Version) {
		logger.Warn("discarding session file with incompatible schema version", "path", s.path, "version", f.Version)
		return convo.State{}
	}

	if time.Since(f.LastUpdated) > TTL {
		return convo.State{}
	}

	return convo.State{Messages: f.Messages}
}

// Append durably records one user/assistant turn, atomically rewriting
// the session file so a concurrent reader never observes a partial write.
func (s *Store) Append(state convo.State, userMsg, assistantMsg string) error {
	next := state.AppendTurn(userMsg, assistantMsg)
	return s.write(next)
}

func (s *Store) write(state convo.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session: create cache dir: %w", err)
	}

	payload := file{
		Version:     SchemaVersion,
		LastUpdated: time.Now(),
		Messages:    state.Messages,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("session: rename into place: %w", err)
	}
	tmpPath = "" // renamed away; nothing left to clean up

	return nil
}

// Clear deletes the session file. Idempotent: a missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
