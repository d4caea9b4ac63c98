package skillet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

// mockTypedTool is a simple typed tool for testing
type mockTypedTool struct {
	name        string
	description string
	schema      *Schema
	got         mockInput
}

type mockInput struct {
	Name  string `json:"name,omitempty"`
	Value int    `json:"value,omitempty"`
}

func (m *mockTypedTool) Name() string {
	return m.name
}

func (m *mockTypedTool) Description() string {
	return m.description
}

func (m *mockTypedTool) Schema() *Schema {
	return m.schema
}

func (m *mockTypedTool) Annotations() *ToolAnnotations {
	return nil
}

func (m *mockTypedTool) Call(ctx context.Context, input mockInput) (*ToolResult, error) {
	m.got = input
	return NewToolResultText("ok"), nil
}

func TestTypedToolAdapter_NilInput(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
	}
	adapter := ToolAdapter(tool)

	// Call with nil input - should not error
	result, err := adapter.Call(context.Background(), nil)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestTypedToolAdapter_EmptyBytes(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
	}
	adapter := ToolAdapter(tool)

	result, err := adapter.Call(context.Background(), []byte{})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestTypedToolAdapter_ValidJSON(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
	}
	adapter := ToolAdapter(tool)

	result, err := adapter.Call(context.Background(), json.RawMessage(`{"name":"test","value":42}`))
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.Equal(t, tool.got.Name, "test")
	assert.Equal(t, tool.got.Value, 42)
}

func TestTypedToolAdapter_TypedPassThrough(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
	}
	adapter := ToolAdapter(tool)

	// Already-typed input skips the JSON path entirely
	result, err := adapter.Call(context.Background(), mockInput{Name: "direct"})
	assert.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, tool.got.Name, "direct")
}

func TestTypedToolAdapter_MissingRequired(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
		schema: &Schema{
			Type:     Object,
			Required: []string{"name"},
			Properties: map[string]*SchemaProperty{
				"name": {Type: String},
			},
		},
	}
	adapter := ToolAdapter(tool)

	result, err := adapter.Call(context.Background(), json.RawMessage(`{"value":3}`))
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), `missing required property "name"`)
}

func TestTypedToolAdapter_MalformedArguments(t *testing.T) {
	tool := &mockTypedTool{
		name:        "test",
		description: "test tool",
		schema: &Schema{
			Type:     Object,
			Required: []string{"name"},
			Properties: map[string]*SchemaProperty{
				"name": {Type: String},
			},
		},
	}
	adapter := ToolAdapter(tool)

	// Non-object arguments are rejected as an error result, not a Go error
	result, err := adapter.Call(context.Background(), "not json")
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "invalid input for tool test")
}

func TestValidateInput(t *testing.T) {
	s := &Schema{
		Type:     Object,
		Required: []string{"skill_name"},
		Properties: map[string]*SchemaProperty{
			"skill_name": {Type: String},
		},
	}

	tests := []struct {
		name    string
		schema  *Schema
		data    string
		wantErr bool
	}{
		{"nil schema accepts anything", nil, `"whatever"`, false},
		{"required present", s, `{"skill_name":"pdf"}`, false},
		{"required missing", s, `{}`, true},
		{"extra keys allowed", s, `{"skill_name":"pdf","other":1}`, false},
		{"not an object", s, `[1,2]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.schema, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToolResultText(t *testing.T) {
	result := NewToolResult(
		&ToolResultContent{Type: ToolResultContentTypeText, Text: "one"},
		&ToolResultContent{Type: ToolResultContentTypeImage, Data: "abc"},
		&ToolResultContent{Type: ToolResultContentTypeText, Text: "two"},
	)
	assert.Equal(t, result.Text(), "one\ntwo")

	errResult := NewToolResultError("boom")
	assert.True(t, errResult.IsError)
	assert.Equal(t, errResult.Text(), "boom")
}
