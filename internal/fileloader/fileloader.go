// Package fileloader implements the File Loader collaborator named in
// SPEC_FULL.md §6: sensitive-pattern and size/extension guards before a
// file's content is folded into a prompt, grounded on
// original_source/aifr/file_loader.py.
package fileloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aifr/internal/provider"
)

// DefaultTimeout matches spec.md §5's file-read suspension point.
const DefaultTimeout = 10 * time.Second

// MaxBytes is the maximum file size accepted, per spec.md §6 (5 MiB).
const MaxBytes = 5 * 1024 * 1024

var sensitivePatterns = []string{
	".env",
	"id_rsa",
	"id_dsa",
	"id_ecdsa",
	"id_ed25519",
	".pem",
	".key",
	".pfx",
	".p12",
	"credentials",
	"secrets",
	".password",
	".vault",
}

var supportedExtensions = map[string]bool{
	".txt": true, ".md": true, ".py": true, ".go": true, ".json": true,
	".yaml": true, ".yml": true, ".csv": true, ".log": true, ".xml": true,
	".ini": true, ".cfg": true, ".j2": true,
}

// IsSensitive reports whether path matches a known sensitive-file
// pattern (credential files, SSH keys, .env variants) or lives under a
// .ssh/ directory.
func IsSensitive(path string) bool {
	lowerName := strings.ToLower(filepath.Base(path))
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lowerName, pattern) {
			return true
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".ssh" {
			return true
		}
	}
	return false
}

// Load reads path, applying the sensitive-file, size, and extension
// guards before returning its content. Content that isn't valid UTF-8 is
// decoded leniently (invalid sequences replaced), matching the original
// implementation's fallback decode.
//
// The read is bounded by timeout, mirroring execcapture.Run's suspension
// point: os.ReadFile has no context.Context support of its own, so the
// read runs in a goroutine and the timeout is enforced with a select.
func Load(ctx context.Context, path string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	expanded, err := expandHome(path)
	if err != nil {
		return "", &provider.IOError{Op: "resolve path " + path, Err: err}
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return "", &provider.IOError{Op: "stat " + path, Err: err}
	}

	if IsSensitive(expanded) {
		return "", &provider.SensitiveFileError{Path: path}
	}
	if info.Size() > MaxBytes {
		return "", &provider.OversizeError{Path: path, SizeBytes: info.Size(), LimitBytes: MaxBytes}
	}
	ext := strings.ToLower(filepath.Ext(expanded))
	if !supportedExtensions[ext] {
		return "", &provider.ConfigError{Reason: "unsupported file extension: " + ext}
	}

	type readResult struct {
		data []byte
		err  error
	}
	if err := ctx.Err(); err != nil {
		return "", &provider.IOError{Op: "read " + path, Err: err}
	}
	done := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(expanded)
		done <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &provider.IOError{Op: fmt.Sprintf("read %q timed out after %s", path, timeout), Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			return "", &provider.IOError{Op: "read " + path, Err: res.err}
		}
		return strings.ToValidUTF8(string(res.data), "�"), nil
	}
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
