package config

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/providers"
	"github.com/deepnoodle-ai/skillet/providers/openaicompat"
	"github.com/deepnoodle-ai/skillet/providers/openrouter"
)

var DefaultProvider = "openrouter"

// GetModel constructs a chat model for the given provider and model
// names, using each provider's default endpoint and API key variable.
func GetModel(providerName, modelName string) (llm.LLM, error) {
	config := Config{Provider: providerName, Model: modelName}
	return config.GetModel()
}

// GetModel constructs the chat model described by the configuration.
// An empty Provider is resolved from the model name by the provider
// registry, unless APIKeyEnv is set, in which case the default
// provider is used so the key is honored. An empty Model uses the
// provider's default model.
func (config *Config) GetModel() (llm.LLM, error) {
	var apiKey string
	if config.APIKeyEnv != "" {
		apiKey = os.Getenv(config.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set", config.APIKeyEnv)
		}
	}

	providerName := config.Provider
	if providerName == "" {
		if config.Model != "" && apiKey == "" {
			if model := providers.CreateModel(config.Model, config.BaseURL); model != nil {
				return model, nil
			}
		}
		providerName = DefaultProvider
	}

	switch providerName {
	case "openrouter":
		opts := []openrouter.Option{}
		if config.Model != "" {
			opts = append(opts, openrouter.WithModel(config.Model))
		}
		if config.BaseURL != "" {
			opts = append(opts, openrouter.WithEndpoint(config.BaseURL))
		}
		if apiKey != "" {
			opts = append(opts, openrouter.WithAPIKey(apiKey))
		}
		return openrouter.New(opts...), nil

	case "openai", "openai-compatible":
		opts := []openaicompat.Option{}
		if config.Model != "" {
			opts = append(opts, openaicompat.WithModel(config.Model))
		}
		if config.BaseURL != "" {
			opts = append(opts, openaicompat.WithEndpoint(config.BaseURL))
		}
		if apiKey != "" {
			opts = append(opts, openaicompat.WithAPIKey(apiKey))
		}
		return openaicompat.New(opts...), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %q", providerName)
	}
}
