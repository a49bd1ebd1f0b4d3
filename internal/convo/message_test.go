package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendTurnDoesNotMutateOriginal(t *testing.T) {
	original := State{Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	next := original.AppendTurn("q", "a")

	assert.Len(t, original.Messages, 1)
	assert.Len(t, next.Messages, 3)
	assert.Equal(t, RoleUser, next.Messages[1].Role)
	assert.Equal(t, "q", next.Messages[1].Content)
	assert.Equal(t, RoleAssistant, next.Messages[2].Role)
	assert.Equal(t, "a", next.Messages[2].Content)
}

func TestEstimateTokensCeilsCharsOverFour(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}

func TestEstimateTotalTokensSums(t *testing.T) {
	assert.Equal(t, 2, EstimateTotalTokens("ab", "cd"))
}
