// Package agent implements a bounded tool-use loop for running tasks
// against a skills workspace.
//
// An Agent is constructed with a model, a set of tools, and a step
// budget. Each call to Run opens a fresh conversation seeded with the
// rendered system prompt and the user's query, then alternates between
// model calls and tool dispatch until the model responds with exactly
// "task_complete" or the budget runs out. Exhausting the budget is a
// soft stop: the transcript so far is returned without an error.
//
// Tool calls within one response are executed synchronously in the
// order the model issued them, and each result is appended as its own
// tool message tagged with the originating call ID. A call naming a
// tool the agent does not have is logged and skipped without a reply,
// leaving the model to notice the gap from its transcript.
package agent

import (
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/google/uuid"
)

// TaskComplete is the sentinel response text that ends a run. The match
// is exact: surrounding whitespace or punctuation defeats it.
const TaskComplete = "task_complete"

// DefaultMaxSteps bounds the number of model calls in one run when
// Options.MaxSteps is not set.
const DefaultMaxSteps = 50

// TimeFormat is the layout used for the system prompt's current time.
const TimeFormat = "2006-01-02 15:04:05"

var (
	// ErrNoModel is returned by New when no model is configured.
	ErrNoModel = errors.New("agent requires a model")

	// ErrNoTools is returned by New when no tools are configured.
	ErrNoTools = errors.New("agent requires at least one tool")

	// ErrNoResponse indicates the model returned neither a response nor
	// an error.
	ErrNoResponse = errors.New("model returned no response")
)

// Options configure a new Agent.
type Options struct {
	// Model used to drive the loop. Required.
	Model llm.LLM

	// Tools the model may call. Required.
	Tools []skillet.Tool

	// SystemPrompt overrides DefaultSystemPrompt. Parsed as a
	// text/template and rendered with the same data.
	SystemPrompt string

	// MaxSteps bounds the number of model calls per run. Defaults to
	// DefaultMaxSteps.
	MaxSteps int

	// Logger receives run diagnostics. Defaults to a no-op logger.
	Logger slogger.Logger
}

// Agent runs queries against a model with a fixed set of tools. It is
// stateless between runs; each Run builds its own conversation.
type Agent struct {
	id           string
	model        llm.LLM
	tools        []llm.Tool
	toolsByName  map[string]skillet.Tool
	maxSteps     int
	logger       slogger.Logger
	systemPrompt *template.Template
}

// New creates an Agent from the given options.
func New(opts Options) (*Agent, error) {
	if opts.Model == nil {
		return nil, ErrNoModel
	}
	if len(opts.Tools) == 0 {
		return nil, ErrNoTools
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Logger == nil {
		opts.Logger = slogger.DefaultLogger
	}
	promptText := opts.SystemPrompt
	if promptText == "" {
		promptText = DefaultSystemPrompt
	}
	systemPrompt, err := parseTemplate("system-prompt", promptText)
	if err != nil {
		return nil, fmt.Errorf("invalid system prompt template: %w", err)
	}
	tools := make([]llm.Tool, 0, len(opts.Tools))
	toolsByName := make(map[string]skillet.Tool, len(opts.Tools))
	for _, tool := range opts.Tools {
		tools = append(tools, tool)
		toolsByName[tool.Name()] = tool
	}
	return &Agent{
		id:           uuid.NewString(),
		model:        opts.Model,
		tools:        tools,
		toolsByName:  toolsByName,
		maxSteps:     opts.MaxSteps,
		logger:       opts.Logger,
		systemPrompt: systemPrompt,
	}, nil
}

// ID returns the agent's session identifier, used to correlate log
// entries across runs.
func (a *Agent) ID() string {
	return a.id
}

// Run executes one query and returns the full conversation transcript.
//
// The returned error is non-nil only for failures that make continuing
// pointless: a bad system prompt render, a model call error, or a tool
// returning a Go error. Recoverable tool problems (missing skills,
// failing commands) travel back to the model as tool result text and do
// not end the run. Reaching the step budget without the task_complete
// sentinel returns the transcript with a nil error.
func (a *Agent) Run(ctx context.Context, query string) (*Conversation, error) {
	systemPrompt, err := executeTemplate(a.systemPrompt, promptData{
		CurrentTime: time.Now().Format(TimeFormat),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering system prompt: %w", err)
	}

	conversation := &Conversation{}
	conversation.append(llm.NewSystemTextMessage(systemPrompt))
	conversation.append(llm.NewUserTextMessage(query))

	logger := a.logger.With("session", a.id)
	logger.Info("starting agent run", "max_steps", a.maxSteps, "tools", len(a.tools))

	start := time.Now()
	var totalUsage llm.Usage
	for step := 1; step <= a.maxSteps; step++ {
		response, err := a.model.Generate(ctx,
			llm.WithMessages(conversation.Messages()...),
			llm.WithTools(a.tools...),
		)
		if err != nil {
			return nil, fmt.Errorf("model call failed (step %d): %w", step, err)
		}
		if response == nil {
			return nil, ErrNoResponse
		}
		totalUsage.Add(&response.Usage)
		conversation.append(response.Message())

		toolCalls := response.ToolCalls()
		logger.Debug("model response",
			"step", step,
			"stop_reason", response.StopReason,
			"tool_calls", len(toolCalls),
			"input_tokens", response.Usage.InputTokens,
			"output_tokens", response.Usage.OutputTokens)

		if response.Text() == TaskComplete {
			logger.Info("agent run complete",
				"steps", step,
				"duration", time.Since(start).String(),
				"input_tokens", totalUsage.InputTokens,
				"output_tokens", totalUsage.OutputTokens)
			return conversation, nil
		}

		for _, call := range toolCalls {
			tool, ok := a.toolsByName[call.Name]
			if !ok {
				logger.Error("model requested unknown tool", "tool", call.Name, "tool_call_id", call.ID)
				continue
			}
			logger.Debug("calling tool", "tool", call.Name, "tool_call_id", call.ID)
			result, err := tool.Call(ctx, call.Input)
			if err != nil {
				return nil, fmt.Errorf("tool %q failed: %w", call.Name, err)
			}
			conversation.append(llm.NewToolResultMessage(&llm.ToolResultContent{
				ToolUseID: call.ID,
				Content:   result.Content,
				IsError:   result.IsError,
			}))
		}
	}

	logger.Warn("step budget exhausted before task completion",
		"steps", a.maxSteps,
		"duration", time.Since(start).String(),
		"input_tokens", totalUsage.InputTokens,
		"output_tokens", totalUsage.OutputTokens)
	return conversation, nil
}
