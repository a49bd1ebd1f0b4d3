package provider

// NewOpenAI builds the OpenAI adapter, using the SDK's default base URL
// unless the request carries a BaseURL.
func NewOpenAI() Provider {
	return &openAICompatible{name: "openai"}
}
