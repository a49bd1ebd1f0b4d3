package provider

import "strings"

// NewOpenWebUI builds the OpenWebUI adapter. base_url is required by
// spec.md §4.1; the factory enforces that before this is ever called.
func NewOpenWebUI(baseURL string) Provider {
	return &openAICompatible{name: "openwebui", baseURL: strings.TrimSuffix(baseURL, "/") + "/api"}
}
