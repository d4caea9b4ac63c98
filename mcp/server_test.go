package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/deepnoodle-ai/wonton/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// staticTool is a canned skillet.Tool for transport tests.
type staticTool struct {
	name        string
	description string
	schema      *schema.Schema
	annotations *skillet.ToolAnnotations
	result      *skillet.ToolResult
	err         error
	lastInput   any
}

func (t *staticTool) Name() string                          { return t.name }
func (t *staticTool) Description() string                   { return t.description }
func (t *staticTool) Schema() *schema.Schema                { return t.schema }
func (t *staticTool) Annotations() *skillet.ToolAnnotations { return t.annotations }

func (t *staticTool) Call(ctx context.Context, input any) (*skillet.ToolResult, error) {
	t.lastInput = input
	if t.err != nil {
		return nil, t.err
	}
	return t.result, nil
}

func newStaticTool() *staticTool {
	return &staticTool{
		name:        "load_skill",
		description: "Load one skill's instructions",
		schema: &schema.Schema{
			Type: "object",
			Properties: map[string]*schema.Property{
				"skill_name": {Type: "string", Description: "Name of the skill"},
				"max_lines":  {Type: "number", Description: "Limit output lines"},
				"verbose":    {Type: "boolean", Description: "Include details"},
			},
			Required: []string{"skill_name"},
		},
		annotations: &skillet.ToolAnnotations{Title: "Load Skill", ReadOnlyHint: true},
		result:      skillet.NewToolResultText("skill body"),
	}
}

func TestNewServer(t *testing.T) {
	t.Run("requires tools", func(t *testing.T) {
		_, err := NewServer(ServerOptions{})
		assert.ErrorIs(t, err, ErrNoTools)
	})

	t.Run("defaults applied", func(t *testing.T) {
		server, err := NewServer(ServerOptions{Tools: []skillet.Tool{newStaticTool()}})
		assert.NoError(t, err)
		assert.NotNil(t, server)
		assert.Equal(t, "skillet", server.name)
	})
}

func TestConvertToolDefinition(t *testing.T) {
	converted := convertToolDefinition(newStaticTool())

	assert.Equal(t, "load_skill", converted.Name)
	assert.Equal(t, "Load one skill's instructions", converted.Description)
	assert.Equal(t, "object", converted.InputSchema.Type)
	assert.Len(t, converted.InputSchema.Properties, 3)
	assert.Equal(t, []string{"skill_name"}, converted.InputSchema.Required)
	assert.Equal(t, "Load Skill", converted.Annotations.Title)

	property, ok := converted.InputSchema.Properties["skill_name"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "string", property["type"])
	assert.Equal(t, "Name of the skill", property["description"])
}

func TestToolHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tool output", func(t *testing.T) {
		tool := newStaticTool()
		handler := toolHandler(tool, slogger.NewDevNullLogger())

		request := mcp.CallToolRequest{}
		request.Params.Name = "load_skill"
		request.Params.Arguments = map[string]any{"skill_name": "pdf-fill"}

		result, err := handler(ctx, request)
		assert.NoError(t, err)
		assert.False(t, result.IsError)
		text, ok := result.Content[0].(mcp.TextContent)
		assert.True(t, ok)
		assert.Equal(t, "skill body", text.Text)

		arguments, ok := tool.lastInput.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "pdf-fill", arguments["skill_name"])
	})

	t.Run("error results keep the flag", func(t *testing.T) {
		tool := newStaticTool()
		tool.result = skillet.NewToolResultError("error: 'skill_name' is required")
		handler := toolHandler(tool, slogger.NewDevNullLogger())

		result, err := handler(ctx, mcp.CallToolRequest{})
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("tool errors become protocol errors", func(t *testing.T) {
		tool := newStaticTool()
		tool.err = errors.New("workspace scan failed")
		handler := toolHandler(tool, slogger.NewDevNullLogger())

		_, err := handler(ctx, mcp.CallToolRequest{})
		assert.Error(t, err)
		assert.ErrorContains(t, err, "workspace scan failed")
	})
}

func TestConvertToolResult(t *testing.T) {
	result := convertToolResult(skillet.NewToolResult(
		&skillet.ToolResultContent{Type: skillet.ToolResultContentTypeText, Text: "listing"},
		&skillet.ToolResultContent{Type: skillet.ToolResultContentTypeImage, Data: "aGk=", MimeType: "image/png"},
	))
	assert.False(t, result.IsError)
	assert.Len(t, result.Content, 2)

	text, ok := result.Content[0].(mcp.TextContent)
	assert.True(t, ok)
	assert.Equal(t, "listing", text.Text)

	image, ok := result.Content[1].(mcp.ImageContent)
	assert.True(t, ok)
	assert.Equal(t, "image/png", image.MIMEType)
}
