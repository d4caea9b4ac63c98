package google

import (
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/providers"
)

func init() {
	providers.Register(providers.ProviderEntry{
		Name:    "google",
		Match:   providers.PrefixMatcher("gemini-"),
		Factory: factory,
	})
}

func factory(model, endpoint string) llm.LLM {
	// The endpoint argument is ignored: the genai SDK resolves its own
	// endpoints from WithAPIKey / WithProjectID / WithLocation.
	return New(WithModel(model))
}
