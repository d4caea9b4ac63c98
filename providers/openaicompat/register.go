package openaicompat

import (
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/providers"
)

func init() {
	providers.Register(providers.ProviderEntry{
		Name:    "openai",
		Match:   providers.PrefixesMatcher("gpt-", "o1-", "o3-", "o4-", "chatgpt-"),
		Factory: factory,
	})
	// Any unrecognized model is assumed to live behind an OpenAI-compatible
	// endpoint, which the caller points at with the endpoint argument.
	providers.SetFallback(factory)
}

func factory(model, endpoint string) llm.LLM {
	opts := []Option{WithModel(model)}
	if endpoint != "" {
		opts = append(opts, WithEndpoint(endpoint))
	}
	return New(opts...)
}
