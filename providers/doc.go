// Package providers contains the LLM provider registry and shared error types.
//
// Providers self-register via init() functions using [Register]. The registry
// matches model names to provider factories using configurable matchers
// ([PrefixMatcher], [ContainsMatcher], [EnvMatcher]).
//
// Individual providers are in subpackages:
//
//   - [github.com/deepnoodle-ai/skillet/providers/openaicompat] - OpenAI Chat Completions API and compatible servers
//   - [github.com/deepnoodle-ai/skillet/providers/openrouter] - Multi-provider proxy
//   - [github.com/deepnoodle-ai/skillet/providers/google] - Gemini models
package providers
