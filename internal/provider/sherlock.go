package provider

// SherlockBaseURL is Sherlock's fixed chat-completions endpoint.
const SherlockBaseURL = "https://api-sherlock.cloudferro.com/openai/v1"

// NewSherlock builds the Sherlock adapter.
func NewSherlock() Provider {
	return &openAICompatible{name: "sherlock", baseURL: SherlockBaseURL}
}
