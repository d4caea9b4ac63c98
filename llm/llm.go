// Package llm defines a provider-agnostic interface for chat language
// models with tool use. Concrete implementations live in the providers
// subpackages.
package llm

import (
	"context"
	"net/http"

	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/deepnoodle-ai/wonton/schema"
)

// LLM is implemented by chat model providers.
type LLM interface {
	// Name of the provider.
	Name() string

	// Generate one assistant response. Messages, tools, and generation
	// parameters are passed as options.
	Generate(ctx context.Context, opts ...Option) (*Response, error)
}

// Tool describes a callable tool to the model. The root skillet.Tool
// interface satisfies this.
type Tool interface {
	Name() string
	Description() string
	Schema() *schema.Schema
}

// ToolChoiceType controls how the model may use tools.
type ToolChoiceType string

const (
	ToolChoiceTypeAuto ToolChoiceType = "auto"
	ToolChoiceTypeAny  ToolChoiceType = "any"
	ToolChoiceTypeNone ToolChoiceType = "none"
	ToolChoiceTypeTool ToolChoiceType = "tool"
)

// ToolChoice directs the model's tool use for one generation.
type ToolChoice struct {
	Type ToolChoiceType `json:"type"`
	Name string         `json:"name,omitempty"`
}

var (
	ToolChoiceAuto = &ToolChoice{Type: ToolChoiceTypeAuto}
	ToolChoiceAny  = &ToolChoice{Type: ToolChoiceTypeAny}
	ToolChoiceNone = &ToolChoice{Type: ToolChoiceTypeNone}
)

// Config carries the settings for a single generation request.
type Config struct {
	Model          string
	SystemPrompt   string
	Messages       []*Message
	MaxTokens      *int
	Temperature    *float64
	Tools          []Tool
	ToolChoice     *ToolChoice
	Logger         slogger.Logger
	RequestHeaders http.Header
}

// Apply applies the given options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Option is a function that configures one generation request.
type Option func(*Config)

// WithModel sets the model used for the generation.
func WithModel(model string) Option {
	return func(config *Config) {
		config.Model = model
	}
}

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(systemPrompt string) Option {
	return func(config *Config) {
		config.SystemPrompt = systemPrompt
	}
}

// WithMessages sets the conversation messages.
func WithMessages(messages ...*Message) Option {
	return func(config *Config) {
		config.Messages = messages
	}
}

// WithMaxTokens sets the max output tokens.
func WithMaxTokens(maxTokens int) Option {
	return func(config *Config) {
		config.MaxTokens = &maxTokens
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(config *Config) {
		config.Temperature = &temperature
	}
}

// WithTools sets the tools available to the model.
func WithTools(tools ...Tool) Option {
	return func(config *Config) {
		config.Tools = tools
	}
}

// WithToolChoice sets the tool choice for the generation.
func WithToolChoice(toolChoice *ToolChoice) Option {
	return func(config *Config) {
		config.ToolChoice = toolChoice
	}
}

// WithLogger sets the logger used by the provider.
func WithLogger(logger slogger.Logger) Option {
	return func(config *Config) {
		config.Logger = logger
	}
}

// WithRequestHeaders sets additional HTTP headers for the request.
func WithRequestHeaders(headers http.Header) Option {
	return func(config *Config) {
		config.RequestHeaders = headers
	}
}
