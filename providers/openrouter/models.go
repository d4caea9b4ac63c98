package openrouter

// Commonly used OpenRouter model IDs. Any "vendor/model" ID accepted by
// OpenRouter works; these constants just cover the usual suspects.
const (
	// Anthropic models
	ModelClaudeOpus45   = "anthropic/claude-opus-4-5"
	ModelClaudeSonnet45 = "anthropic/claude-sonnet-4-5"
	ModelClaudeHaiku45  = "anthropic/claude-haiku-4-5"

	// OpenAI models
	ModelGPT5     = "openai/gpt-5"
	ModelGPT5Mini = "openai/gpt-5-mini"
	ModelGPT4o    = "openai/gpt-4o"
	ModelO3       = "openai/o3"
	ModelO4Mini   = "openai/o4-mini"

	// Google models
	ModelGemini25Pro   = "google/gemini-2.5-pro"
	ModelGemini25Flash = "google/gemini-2.5-flash"

	// DeepSeek models
	ModelDeepSeekR1 = "deepseek/deepseek-r1-0528"
)
