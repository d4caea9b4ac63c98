package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/wonton/assert"
)

type fakeLLM struct {
	name string
}

func (f *fakeLLM) Name() string {
	return f.name
}

func (f *fakeLLM) Generate(ctx context.Context, opts ...llm.Option) (*llm.Response, error) {
	return &llm.Response{Role: llm.Assistant}, nil
}

func TestRegistryMatchOrder(t *testing.T) {
	registry := &Registry{}
	registry.Register(ProviderEntry{
		Name:  "specific",
		Match: PrefixMatcher("gpt-4o"),
		Factory: func(model, endpoint string) llm.LLM {
			return &fakeLLM{name: "specific"}
		},
	})
	registry.Register(ProviderEntry{
		Name:  "general",
		Match: PrefixMatcher("gpt-"),
		Factory: func(model, endpoint string) llm.LLM {
			return &fakeLLM{name: "general"}
		},
	})

	model := registry.CreateModel("gpt-4o-mini", "")
	assert.NotNil(t, model)
	assert.Equal(t, "specific", model.Name())

	model = registry.CreateModel("gpt-5", "")
	assert.NotNil(t, model)
	assert.Equal(t, "general", model.Name())
}

func TestRegistryFallback(t *testing.T) {
	registry := &Registry{}
	assert.Nil(t, registry.CreateModel("unknown-model", ""))

	registry.SetFallback(func(model, endpoint string) llm.LLM {
		return &fakeLLM{name: "fallback"}
	})
	model := registry.CreateModel("unknown-model", "")
	assert.NotNil(t, model)
	assert.Equal(t, "fallback", model.Name())
}

func TestMatchers(t *testing.T) {
	t.Run("prefix is case insensitive", func(t *testing.T) {
		match := PrefixMatcher("Gemini-")
		assert.True(t, match("gemini-2.5-flash"))
		assert.False(t, match("gpt-4o"))
	})

	t.Run("prefixes matches any", func(t *testing.T) {
		match := PrefixesMatcher("gpt-", "o3-")
		assert.True(t, match("o3-mini"))
		assert.True(t, match("GPT-4o"))
		assert.False(t, match("claude-3"))
	})

	t.Run("contains", func(t *testing.T) {
		match := ContainsMatcher("/")
		assert.True(t, match("openai/gpt-4o"))
		assert.False(t, match("gpt-4o"))
	})

	t.Run("env gated", func(t *testing.T) {
		t.Setenv("SKILLET_TEST_PROVIDER_KEY", "")
		match := EnvMatcher("SKILLET_TEST_PROVIDER_KEY", ContainsMatcher("/"))
		assert.False(t, match("openai/gpt-4o"))

		t.Setenv("SKILLET_TEST_PROVIDER_KEY", "secret")
		assert.True(t, match("openai/gpt-4o"))
	})
}

func TestProviderError(t *testing.T) {
	t.Run("retryable status returns the error unwrapped", func(t *testing.T) {
		err := NewError(429, "rate limited")
		var provErr *Error
		assert.True(t, errors.As(err, &provErr))
		assert.Equal(t, 429, provErr.StatusCode())
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("client errors do not retry", func(t *testing.T) {
		assert.Error(t, NewError(400, "bad request"))
		for _, status := range []int{400, 401, 403, 404, 422} {
			assert.False(t, shouldRetry(status))
		}
	})

	t.Run("server side statuses retry", func(t *testing.T) {
		for _, status := range []int{429, 500, 503, 504, 520} {
			assert.True(t, shouldRetry(status))
		}
	})
}
