// Package providers implements the Reviewer interface for each supported LLM
// provider.
//
// Supported providers: Google Gemini (the default, via google.golang.org/genai),
// OpenAI (via github.com/openai/openai-go), Anthropic Claude, and Ollama /
// LMStudio for local models over the OpenAI-compatible HTTP API.
//
// All providers share a retry helper with exponential back-off for rate
// limits and 5xx responses. Authentication failures are never retried and
// can be detected with [IsAuthError].
//
// Use [New] to obtain a Reviewer by provider name and model string.
package providers
