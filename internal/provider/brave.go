package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"aifr/internal/convo"
	"aifr/internal/logger"
)

// BraveBaseURL is Brave's summarizer search endpoint.
const BraveBaseURL = "https://api.search.brave.com/res/v1/summarizer/search"

// braveProvider calls Brave's Summarizer API. Unlike the other three
// adapters it is not OpenAI-shaped: GET with a query string, no message
// array, no usage block.
//
// Brave is stateless per call: only the last user message is sent as the
// search query, with envelope markers stripped. Persisted conversation
// history (req.Messages beyond the last user turn) is intentionally
// ignored — there is no wire representation for it in this API.
type braveProvider struct {
	httpClient *http.Client
}

// NewBrave builds the Brave adapter.
func NewBrave() Provider {
	return &braveProvider{httpClient: http.DefaultClient}
}

// envelopeMarker matches a whole marker line (see internal/envelope,
// whose markers are byte-exact and carry no trailing text), so only the
// marker itself is stripped and the wrapped content survives.
var envelopeMarker = regexp.MustCompile(`(?m)^===(FILE_START|FILE_END|CONSOLE_START|CONSOLE_END|STDIN_START|STDIN_END)===$\n?`)

func (p *braveProvider) Call(ctx context.Context, req Request) (*Response, error) {
	if req.APIKey == "" {
		return nil, &ConfigError{Reason: "brave: missing API key"}
	}

	query := lastUserQuery(req.Messages)
	if query == "" {
		return nil, &ApiError{Provider: "brave", Message: "requires a user query"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, buildBraveURL(query), nil)
	if err != nil {
		return nil, &ApiError{Provider: "brave", Message: err.Error()}
	}
	httpReq.Header.Set("X-Subscription-Token", req.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	logger.Debug("calling provider", "provider", "brave", "query_len", len(query))

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ApiError{Provider: "brave", Message: fmt.Sprintf("connection error: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &IOError{Op: "read brave response body", Err: err}
	}

	if resp.StatusCode >= 300 {
		return nil, &ApiError{Provider: "brave", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var payload struct {
		Summarizer struct {
			Summary string `json:"summary"`
		} `json:"summarizer"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ApiError{Provider: "brave", Message: "invalid JSON response"}
	}
	if payload.Summarizer.Summary == "" {
		return nil, &ApiError{Provider: "brave", Message: "no summary returned"}
	}

	return &Response{Content: payload.Summarizer.Summary, Model: "brave-summarizer"}, nil
}

func buildBraveURL(query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("summary", "true")
	return BraveBaseURL + "?" + v.Encode()
}

func lastUserQuery(messages []convo.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == convo.RoleUser {
			return strings.TrimSpace(envelopeMarker.ReplaceAllString(messages[i].Content, ""))
		}
	}
	return ""
}
