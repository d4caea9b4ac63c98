package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/wonton/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolAdapter presents a remote MCP tool as a skillet.Tool, so the agent
// can mix remote and in-process tools without caring which is which.
type ToolAdapter struct {
	client     *Client
	tool       mcp.Tool
	serverName string
}

// NewToolAdapter wraps one tool from a connected client.
func NewToolAdapter(client *Client, tool mcp.Tool, serverName string) *ToolAdapter {
	return &ToolAdapter{
		client:     client,
		tool:       tool,
		serverName: serverName,
	}
}

// Name returns the remote tool's name.
func (t *ToolAdapter) Name() string {
	return t.tool.Name
}

// Description returns the remote tool's description, or a placeholder
// naming the server when the tool has none.
func (t *ToolAdapter) Description() string {
	if t.tool.Description != "" {
		return t.tool.Description
	}
	return fmt.Sprintf("Tool %s from MCP server %s", t.tool.Name, t.serverName)
}

// Schema converts the remote input schema to the local schema form.
func (t *ToolAdapter) Schema() *schema.Schema {
	if t.tool.InputSchema.Type == "" {
		return &schema.Schema{
			Type:       "object",
			Properties: map[string]*schema.Property{},
		}
	}
	converted := &schema.Schema{
		Type:     schema.SchemaType(t.tool.InputSchema.Type),
		Required: t.tool.InputSchema.Required,
	}
	if t.tool.InputSchema.Properties != nil {
		converted.Properties = make(map[string]*schema.Property, len(t.tool.InputSchema.Properties))
		for name, raw := range t.tool.InputSchema.Properties {
			if propMap, ok := raw.(map[string]any); ok {
				converted.Properties[name] = convertProperty(propMap)
			}
		}
	}
	return converted
}

// Annotations marks remote tools as open-world; nothing stronger can be
// assumed about a tool this process does not implement.
func (t *ToolAdapter) Annotations() *skillet.ToolAnnotations {
	return &skillet.ToolAnnotations{
		Title:         fmt.Sprintf("%s (MCP: %s)", t.tool.Name, t.serverName),
		OpenWorldHint: true,
	}
}

// Call forwards the invocation to the remote server. Transport failures
// degrade to error results so the conversation can continue.
func (t *ToolAdapter) Call(ctx context.Context, input any) (*skillet.ToolResult, error) {
	arguments, err := convertArguments(input)
	if err != nil {
		return skillet.NewToolResultError(fmt.Sprintf("invalid tool input: %v", err)), nil
	}
	result, err := t.client.CallTool(ctx, t.tool.Name, arguments)
	if err != nil {
		return skillet.NewToolResultError(fmt.Sprintf("mcp tool call failed: %v", err)), nil
	}
	return convertCallResult(result)
}

// convertArguments normalizes the adapter input forms to the argument
// map MCP expects.
func convertArguments(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case json.RawMessage:
		return unmarshalArguments([]byte(v))
	case []byte:
		return unmarshalArguments(v)
	case string:
		return unmarshalArguments([]byte(v))
	default:
		data, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("marshaling input: %w", err)
		}
		return unmarshalArguments(data)
	}
}

func unmarshalArguments(data []byte) (map[string]any, error) {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		return map[string]any{}, nil
	}
	var arguments map[string]any
	if err := json.Unmarshal(data, &arguments); err != nil {
		return nil, fmt.Errorf("unmarshaling input: %w", err)
	}
	if arguments == nil {
		arguments = map[string]any{}
	}
	return arguments, nil
}

func convertProperty(raw map[string]any) *schema.Property {
	property := &schema.Property{}
	if propType, ok := raw["type"].(string); ok {
		property.Type = schema.SchemaType(propType)
	}
	if description, ok := raw["description"].(string); ok {
		property.Description = description
	}
	if enum, ok := raw["enum"].([]any); ok {
		property.Enum = enum
	}
	if items, ok := raw["items"].(map[string]any); ok {
		property.Items = convertProperty(items)
	}
	if properties, ok := raw["properties"].(map[string]any); ok {
		property.Properties = make(map[string]*schema.Property, len(properties))
		for name, nested := range properties {
			if nestedMap, ok := nested.(map[string]any); ok {
				property.Properties[name] = convertProperty(nestedMap)
			}
		}
	}
	if required, ok := raw["required"].([]any); ok {
		for _, entry := range required {
			if name, ok := entry.(string); ok {
				property.Required = append(property.Required, name)
			}
		}
	}
	return property
}

// convertCallResult maps an MCP result onto the local tool result model.
func convertCallResult(result *mcp.CallToolResult) (*skillet.ToolResult, error) {
	if result == nil {
		return skillet.NewToolResultError("mcp tool returned no result"), nil
	}
	var content []*skillet.ToolResultContent
	for _, block := range result.Content {
		switch c := block.(type) {
		case mcp.TextContent:
			content = append(content, &skillet.ToolResultContent{
				Type: skillet.ToolResultContentTypeText,
				Text: c.Text,
			})
		case mcp.ImageContent:
			content = append(content, &skillet.ToolResultContent{
				Type:     skillet.ToolResultContentTypeImage,
				Data:     c.Data,
				MimeType: c.MIMEType,
			})
		case mcp.AudioContent:
			content = append(content, &skillet.ToolResultContent{
				Type:     skillet.ToolResultContentTypeAudio,
				Data:     c.Data,
				MimeType: c.MIMEType,
			})
		case mcp.EmbeddedResource:
			content = append(content, convertEmbeddedResource(c))
		default:
			return nil, fmt.Errorf("unsupported mcp content type %T", block)
		}
	}
	return &skillet.ToolResult{Content: content, IsError: result.IsError}, nil
}

func convertEmbeddedResource(resource mcp.EmbeddedResource) *skillet.ToolResultContent {
	converted := &skillet.ToolResultContent{Type: skillet.ToolResultContentTypeText}
	switch contents := resource.Resource.(type) {
	case mcp.TextResourceContents:
		converted.Text = contents.Text
		converted.Annotations = map[string]any{"mcp_resource_uri": contents.URI}
	case mcp.BlobResourceContents:
		converted.Text = fmt.Sprintf("Binary resource: %s (%s)", contents.URI, contents.MIMEType)
		converted.Annotations = map[string]any{"mcp_resource_uri": contents.URI}
	default:
		converted.Text = "Embedded resource (unknown type)"
	}
	return converted
}
