package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsEachKnownProvider(t *testing.T) {
	for _, name := range []string{"sherlock", "openai", "brave"} {
		adapter, err := New(name, "")
		require.NoError(t, err)
		assert.NotNil(t, adapter)
	}
}

func TestNewIsCaseInsensitive(t *testing.T) {
	adapter, err := New("SHERLOCK", "")
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestNewOpenWebUIWithoutBaseURLFails(t *testing.T) {
	_, err := New("openwebui", "")
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewOpenWebUIWithBaseURLSucceeds(t *testing.T) {
	adapter, err := New("openwebui", "https://ollama.local")
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestNewUnknownProviderFails(t *testing.T) {
	_, err := New("mystery", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
