// Package provider implements the four LLM backends aifr can dispatch a
// request to, behind one call contract, per SPEC_FULL.md §4.1.
package provider

import (
	"context"

	"aifr/internal/convo"
)

// Response is a provider-agnostic completion result.
type Response struct {
	Content          string
	Model            string
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
}

// Request is the logical shape every adapter maps into its own wire
// format.
type Request struct {
	Model    string
	Messages []convo.Message
	APIKey   string
	BaseURL  string
}

// Provider is the single operation every backend exposes.
type Provider interface {
	Call(ctx context.Context, req Request) (*Response, error)
}

// Name identifies a supported provider, matched case-insensitively.
type Name string

const (
	Sherlock Name = "sherlock"
	OpenAI   Name = "openai"
	OpenWebUI Name = "openwebui"
	Brave    Name = "brave"
)

func intPtr(v int64) *int {
	i := int(v)
	return &i
}
