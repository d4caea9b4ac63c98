// Package google implements the llm.LLM interface for Gemini models using
// the google.golang.org/genai SDK. It lives in its own Go module so the SDK
// and its dependency tree stay out of the main module.
package google

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/wonton/retry"
	"google.golang.org/genai"
)

const ProviderName = "google"

var (
	DefaultModel         = ModelGemini25Flash
	DefaultMaxTokens     = 4096
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 1 * time.Second
)

var _ llm.LLM = &Provider{}

type Provider struct {
	client        *genai.Client
	projectID     string
	location      string
	apiKey        string
	model         string
	maxTokens     int
	maxRetries    int
	retryBaseWait time.Duration
	mutex         sync.Mutex
}

func New(opts ...Option) *Provider {
	var apiKey string
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		apiKey = value
	} else if value := os.Getenv("GOOGLE_API_KEY"); value != "" {
		apiKey = value
	}
	p := &Provider{
		apiKey:        apiKey,
		model:         DefaultModel,
		maxTokens:     DefaultMaxTokens,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) initClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:   p.apiKey,
		Project:  p.projectID,
		Location: p.location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google genai client: %w", err)
	}
	p.client = client
	return p.client, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Generate(ctx context.Context, opts ...llm.Option) (*llm.Response, error) {
	if _, err := p.initClient(ctx); err != nil {
		return nil, err
	}

	config := &llm.Config{}
	config.Apply(opts...)

	var request Request
	if err := p.applyRequestConfig(&request, config); err != nil {
		return nil, err
	}

	// Gemini carries the system prompt out-of-band as a system instruction,
	// so peel system messages off the conversation.
	system, rest := splitSystemMessages(config.Messages)
	if request.System == "" {
		request.System = system
	} else if system != "" {
		request.System = request.System + "\n\n" + system
	}

	contents, err := messagesToContents(rest)
	if err != nil {
		return nil, err
	}

	genConfig, err := buildGenAIGenerateConfig(&request)
	if err != nil {
		return nil, err
	}

	var result *llm.Response
	err = retry.DoSimple(ctx, func() error {
		resp, err := p.client.Models.GenerateContent(ctx, request.Model, contents, genConfig)
		if err != nil {
			return fmt.Errorf("error generating content: %w", err)
		}
		var convErr error
		result, convErr = convertGenAIResponse(resp, request.Model)
		if convErr != nil {
			return fmt.Errorf("error converting response: %w", convErr)
		}
		return nil
	}, retry.WithMaxAttempts(p.maxRetries+1), retry.WithBackoff(p.retryBaseWait, 5*time.Minute))

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Provider) applyRequestConfig(req *Request, config *llm.Config) error {
	req.Model = config.Model
	if req.Model == "" {
		req.Model = p.model
	}

	if config.MaxTokens != nil {
		req.MaxTokens = *config.MaxTokens
	} else {
		req.MaxTokens = p.maxTokens
	}

	if len(config.Tools) > 0 {
		var tools []map[string]any
		for _, tool := range config.Tools {
			schema := tool.Schema()
			toolConfig := map[string]any{
				"name":        tool.Name(),
				"description": tool.Description(),
			}
			if schema != nil && schema.Type != "" {
				toolConfig["input_schema"] = schema
			}
			tools = append(tools, toolConfig)
		}
		req.Tools = tools
	}

	req.Temperature = config.Temperature
	req.System = config.SystemPrompt
	return nil
}

func splitSystemMessages(messages []*llm.Message) (string, []*llm.Message) {
	var systemTexts []string
	rest := make([]*llm.Message, 0, len(messages))
	for _, message := range messages {
		if message.Role == llm.System {
			if text := message.Text(); text != "" {
				systemTexts = append(systemTexts, text)
			}
			continue
		}
		rest = append(rest, message)
	}
	return strings.Join(systemTexts, "\n\n"), rest
}
