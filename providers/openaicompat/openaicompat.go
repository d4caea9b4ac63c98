// Package openaicompat implements the llm.LLM interface against the OpenAI
// Chat Completions API. Because the endpoint is configurable, it also works
// with the many servers that speak the same protocol (OpenRouter, vLLM,
// Ollama, LM Studio, and others).
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/providers"
	"github.com/deepnoodle-ai/wonton/retry"
)

var (
	DefaultModel         = "gpt-5"
	DefaultEndpoint      = "https://api.openai.com/v1/chat/completions"
	DefaultMaxTokens     = 4096
	DefaultSystemRole    = "developer"
	DefaultClient        = &http.Client{Timeout: 300 * time.Second}
	DefaultMaxRetries    = 6
	DefaultRetryBaseWait = 2 * time.Second
)

var _ llm.LLM = &Provider{}

type Provider struct {
	client        *http.Client
	apiKey        string
	endpoint      string
	model         string
	maxTokens     int
	maxRetries    int
	retryBaseWait time.Duration
	systemRole    string
}

func New(opts ...Option) *Provider {
	p := &Provider{
		apiKey:        os.Getenv("OPENAI_API_KEY"),
		endpoint:      DefaultEndpoint,
		client:        DefaultClient,
		model:         DefaultModel,
		maxTokens:     DefaultMaxTokens,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
		systemRole:    DefaultSystemRole,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return "openai-compat"
}

func (p *Provider) Generate(ctx context.Context, opts ...llm.Option) (*llm.Response, error) {
	config := &llm.Config{}
	config.Apply(opts...)

	var request Request
	if err := p.applyRequestConfig(&request, config); err != nil {
		return nil, err
	}

	if err := validateMessages(config.Messages); err != nil {
		return nil, err
	}
	msgs, err := convertMessages(config.Messages, p.systemRole)
	if err != nil {
		return nil, fmt.Errorf("error converting messages: %w", err)
	}

	request.Messages = msgs
	addSystemPrompt(&request, config.SystemPrompt, p.systemRole)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	var result Response
	err = retry.DoSimple(ctx, func() error {
		req, err := p.createRequest(ctx, body, config)
		if err != nil {
			return err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode == 429 {
				if config.Logger != nil {
					config.Logger.Warn("rate limit exceeded",
						"status", resp.StatusCode, "body", string(body))
				}
			}
			return providers.NewError(resp.StatusCode, string(body))
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
		return nil
	}, retry.WithMaxAttempts(p.maxRetries+1), retry.WithBackoff(p.retryBaseWait, 5*time.Minute))

	if err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("empty response from chat completions api")
	}
	choice := result.Choices[0]

	var contentBlocks []llm.Content
	if choice.Message.Content != "" {
		contentBlocks = append(contentBlocks, &llm.TextContent{Text: choice.Message.Content})
	}

	// Transform tool calls into content blocks
	for _, toolCall := range choice.Message.ToolCalls {
		contentBlocks = append(contentBlocks, &llm.ToolUseContent{
			ID:    toolCall.ID, // e.g. call_12345xyz
			Name:  toolCall.Function.Name,
			Input: []byte(toolCall.Function.Arguments),
		})
	}

	return &llm.Response{
		ID:         result.ID,
		Model:      p.model,
		Role:       llm.Assistant,
		Content:    contentBlocks,
		StopReason: choice.FinishReason,
		Usage: llm.Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
		},
	}, nil
}

func validateMessages(messages []*llm.Message) error {
	messageCount := len(messages)
	if messageCount == 0 {
		return fmt.Errorf("no messages provided")
	}
	for i, message := range messages {
		if len(message.Content) == 0 {
			return fmt.Errorf("empty message detected (index %d)", i)
		}
	}
	return nil
}

// convertMessages flattens content blocks into the wire format. System
// messages carried in the conversation are sent with the configured system
// role, and each tool result block becomes its own "tool" message tagged
// with the originating call ID.
func convertMessages(messages []*llm.Message, systemRole string) ([]Message, error) {
	var result []Message
	for _, msg := range messages {
		role := strings.ToLower(string(msg.Role))
		if msg.Role == llm.System {
			role = systemRole
		}

		// Group all tool use content blocks into a single message
		var toolCalls []ToolCall
		var textContent string
		var hasToolUse bool
		var hasToolResult bool

		// First pass: collect all tool use content blocks and check for tool results
		for _, c := range msg.Content {
			switch c := c.(type) {
			case *llm.ToolUseContent:
				hasToolUse = true
				toolCalls = append(toolCalls, ToolCall{
					ID:   c.ID,
					Type: "function",
					Function: ToolCallFunction{
						Name:      c.Name,
						Arguments: string(c.Input),
					},
				})
			case *llm.TextContent:
				textContent = c.Text
			case *llm.ToolResultContent:
				hasToolResult = true
			}
		}

		// Create a single message for all tool use content blocks
		if hasToolUse {
			result = append(result, Message{
				Role:      role,
				Content:   textContent,
				ToolCalls: toolCalls,
			})
		}

		// Process non-tool-use content blocks
		if !hasToolUse || hasToolResult {
			for _, c := range msg.Content {
				switch c := c.(type) {
				case *llm.TextContent:
					if !hasToolUse {
						result = append(result, Message{Role: role, Content: c.Text})
					}
				case *llm.ToolResultContent:
					// Each tool result goes in its own message
					var contentStr string
					switch content := c.Content.(type) {
					case string:
						contentStr = content
					case []*skillet.ToolResultContent:
						var texts []string
						for _, c := range content {
							if c.Text != "" {
								texts = append(texts, c.Text)
							}
						}
						contentStr = strings.Join(texts, "\n")
					default:
						return nil, fmt.Errorf("unsupported tool result content type")
					}
					result = append(result, Message{
						Role:       "tool",
						Content:    contentStr,
						ToolCallID: c.ToolUseID,
					})
				case *llm.ToolUseContent:
					// Already handled above
				default:
					return nil, fmt.Errorf("unsupported content type: %s", c.Type())
				}
			}
		}
	}
	return result, nil
}

func (p *Provider) applyRequestConfig(req *Request, config *llm.Config) error {
	if model := config.Model; model != "" {
		req.Model = model
	} else {
		req.Model = p.model
	}

	var maxTokens int
	if ptr := config.MaxTokens; ptr != nil {
		maxTokens = *ptr
	} else {
		maxTokens = p.maxTokens
	}

	if maxTokens > 0 {
		if strings.HasPrefix(req.Model, "o") || strings.HasPrefix(req.Model, "gpt-5") {
			req.MaxCompletionTokens = &maxTokens
		} else {
			req.MaxTokens = &maxTokens
		}
	}

	var tools []Tool
	for _, tool := range config.Tools {
		tools = append(tools, Tool{
			Type: "function",
			Function: ToolFunction{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Schema(),
			},
		})
	}

	var toolChoice any
	if len(tools) > 0 {
		toolChoice = "auto"
		if config.ToolChoice != nil {
			switch config.ToolChoice.Type {
			case llm.ToolChoiceTypeAny:
				toolChoice = "required"
			case llm.ToolChoiceTypeNone:
				toolChoice = "none"
			case llm.ToolChoiceTypeAuto:
				toolChoice = "auto"
			case llm.ToolChoiceTypeTool:
				toolChoice = map[string]any{
					"type":     "function",
					"function": map[string]any{"name": config.ToolChoice.Name},
				}
			default:
				return fmt.Errorf("invalid tool choice type: %s", config.ToolChoice.Type)
			}
		}
		req.ToolChoice = toolChoice
	}

	req.Tools = tools
	req.Temperature = config.Temperature
	return nil
}

func addSystemPrompt(request *Request, systemPrompt, systemRole string) {
	if systemPrompt == "" {
		return
	}
	request.Messages = append([]Message{{
		Role:    systemRole,
		Content: systemPrompt,
	}}, request.Messages...)
}

// createRequest creates an HTTP request with appropriate headers for the
// chat completions endpoint
func (p *Provider) createRequest(ctx context.Context, body []byte, config *llm.Config) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	for key, values := range config.RequestHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return req, nil
}
