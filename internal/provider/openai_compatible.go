package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"aifr/internal/convo"
	"aifr/internal/logger"
)

// openAICompatible implements Provider for the three backends that speak
// the OpenAI chat-completions wire format (Sherlock, OpenAI, OpenWebUI),
// via the official openai/openai-go SDK rather than a hand-rolled HTTP
// client, since all three genuinely speak that protocol.
type openAICompatible struct {
	name    string
	baseURL string
}

func (p *openAICompatible) Call(ctx context.Context, req Request) (*Response, error) {
	if req.APIKey == "" {
		return nil, &ConfigError{Reason: fmt.Sprintf("%s: missing API key", p.name)}
	}

	opts := []option.RequestOption{option.WithAPIKey(req.APIKey)}
	if p.baseURL != "" {
		opts = append(opts, option.WithBaseURL(p.baseURL))
	} else if req.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(req.BaseURL))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: toOpenAIMessages(req.Messages),
	}

	logger.Debug("calling provider", "provider", p.name, "model", req.Model, "messages", len(req.Messages))

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIError(p.name, err)
	}

	if len(completion.Choices) == 0 {
		return nil, &ApiError{Provider: p.name, Message: "no response choices returned"}
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, &ApiError{Provider: p.name, Message: "empty response content"}
	}

	resp := &Response{Content: content, Model: string(completion.Model)}
	if completion.Model == "" {
		resp.Model = req.Model
	}
	if u := completion.Usage; u.TotalTokens > 0 || u.PromptTokens > 0 || u.CompletionTokens > 0 {
		resp.PromptTokens = intPtr(u.PromptTokens)
		resp.CompletionTokens = intPtr(u.CompletionTokens)
		resp.TotalTokens = intPtr(u.TotalTokens)
	}
	return resp, nil
}

func toOpenAIMessages(messages []convo.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case convo.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case convo.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case convo.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}

// classifyOpenAIError converts an SDK error into either ContextLengthError
// or a generic ApiError, per spec.md §4.1's context-overflow signal.
func classifyOpenAIError(providerName string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if LooksLikeContextOverflow(apiErr.StatusCode, body) {
			return &ContextLengthError{Provider: providerName, Message: body}
		}
		return &ApiError{Provider: providerName, StatusCode: apiErr.StatusCode, Message: body}
	}
	return &ApiError{Provider: providerName, Message: err.Error()}
}
