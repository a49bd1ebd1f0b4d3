package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfoParsesSemver(t *testing.T) {
	SetBuildInfo("1.2.3", "abcdef1234", "2026-01-01")
	defer SetBuildInfo("0.1.0", "unknown", "unknown")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, uint64(1), info.SemVer.Major())
}

func TestGetFormattedVersionIncludesShortCommit(t *testing.T) {
	SetBuildInfo("1.2.3", "abcdef1234567", "2026-01-01")
	defer SetBuildInfo("0.1.0", "unknown", "unknown")

	out := GetFormattedVersion()
	assert.Contains(t, out, "aifr v1.2.3")
	assert.Contains(t, out, "commit abcdef1")
	assert.NotContains(t, out, "abcdef1234567")
}

func TestSupportsSchema(t *testing.T) {
	assert.True(t, SupportsSchema("1.0.0"))
	assert.True(t, SupportsSchema("1.4.2"))
	assert.False(t, SupportsSchema("2.0.0"))
	assert.False(t, SupportsSchema("not-a-version"))
}

func TestIsPrerelease(t *testing.T) {
	SetBuildInfo("1.0.0-beta.1", "unknown", "unknown")
	defer SetBuildInfo("0.1.0", "unknown", "unknown")
	assert.True(t, IsPrerelease())
}
