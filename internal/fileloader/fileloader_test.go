package fileloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifr/internal/provider"
)

func TestIsSensitiveDetectsKnownPatterns(t *testing.T) {
	assert.True(t, IsSensitive("/home/user/.env"))
	assert.True(t, IsSensitive("id_rsa"))
	assert.True(t, IsSensitive("/home/user/.ssh/config"))
	assert.True(t, IsSensitive("prod.pem"))
	assert.False(t, IsSensitive("main.go"))
}

func TestLoadRejectsSensitiveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET=1"), 0o644))

	_, err := Load(context.Background(), path, DefaultTimeout)
	var sensitiveErr *provider.SensitiveFileError
	assert.ErrorAs(t, err, &sensitiveErr)
}

func TestLoadRejectsOversizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxBytes+1), 0o644))

	_, err := Load(context.Background(), path, DefaultTimeout)
	var oversizeErr *provider.OversizeError
	assert.ErrorAs(t, err, &oversizeErr)
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.exe")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Load(context.Background(), path, DefaultTimeout)
	assert.Error(t, err)
}

func TestLoadReturnsContentForSupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# hello"), 0o644))

	content, err := Load(context.Background(), path, DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, "# hello", content)
}

func TestLoadMissingFileReturnsIOError(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/path/file.txt", DefaultTimeout)
	var ioErr *provider.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello \xff\xfe world"), 0o644))

	content, err := Load(context.Background(), path, DefaultTimeout)
	require.NoError(t, err)
	assert.True(t, strings.Contains(content, "hello"))
	assert.True(t, strings.Contains(content, "world"))
}

func TestLoadRespectsCanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# hello"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, path, DefaultTimeout)
	var ioErr *provider.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadUsesDefaultTimeoutWhenZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# hello"), 0o644))

	content, err := Load(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, "# hello", content)
}
