package provider

import (
	"fmt"
	"strings"
)

// New maps a provider name (case-insensitive) to its adapter, per
// spec.md §4.1's factory rule. openwebui without a base_url fails with a
// ConfigError before any remote call is attempted.
func New(name string, baseURL string) (Provider, error) {
	switch Name(strings.ToLower(name)) {
	case Sherlock:
		return NewSherlock(), nil
	case OpenAI:
		return NewOpenAI(), nil
	case OpenWebUI:
		if baseURL == "" {
			return nil, &ConfigError{Reason: "openwebui provider requires base_url"}
		}
		return NewOpenWebUI(baseURL), nil
	case Brave:
		return NewBrave(), nil
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown provider %q; supported: sherlock, openai, openwebui, brave", name)}
	}
}
