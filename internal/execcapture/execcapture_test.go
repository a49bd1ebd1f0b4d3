package execcapture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	result, err := Run(context.Background(), "echo hello", time.Second)
	require.NoError(t, err)
	assert.Contains(t, result.CombinedOutput, "STDOUT:")
	assert.Contains(t, result.CombinedOutput, "hello")
	assert.Equal(t, 0, result.ExitCode)
}

func TestRunReturnsExitCodeOnFailureWithoutError(t *testing.T) {
	result, err := Run(context.Background(), "exit 3", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.CombinedOutput, "Exit code: 3")
}

func TestRunTimesOut(t *testing.T) {
	_, err := Run(context.Background(), "sleep 5", 50*time.Millisecond)
	assert.Error(t, err)
}

func TestRunNoOutputMessage(t *testing.T) {
	result, err := Run(context.Background(), "true", time.Second)
	require.NoError(t, err)
	assert.Contains(t, result.CombinedOutput, "no output")
}
