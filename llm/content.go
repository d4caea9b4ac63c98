package llm

import (
	"encoding/json"
	"fmt"
)

// ContentType identifies the kind of a content block.
type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeToolUse    ContentType = "tool_use"
	ContentTypeToolResult ContentType = "tool_result"
)

func (c ContentType) String() string {
	return string(c)
}

// Content is one block in a message. Messages carry an ordered list of
// content blocks rather than a single string so that tool calls and tool
// results can travel alongside text.
type Content interface {
	Type() ContentType
}

//// TextContent

// TextContent is a block of plain text.
type TextContent struct {
	Text string `json:"text"`
}

func (c *TextContent) Type() ContentType {
	return ContentTypeText
}

func (c *TextContent) MarshalJSON() ([]byte, error) {
	type alias TextContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		*alias
	}{
		Type:  ContentTypeText,
		alias: (*alias)(c),
	})
}

//// ToolUseContent

// ToolUseContent is a model request to invoke a named tool. Input carries
// the raw JSON arguments exactly as the model produced them.
type ToolUseContent struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

func (c *ToolUseContent) Type() ContentType {
	return ContentTypeToolUse
}

func (c *ToolUseContent) MarshalJSON() ([]byte, error) {
	type alias ToolUseContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		*alias
	}{
		Type:  ContentTypeToolUse,
		alias: (*alias)(c),
	})
}

//// ToolResultContent

// ToolResultContent carries the outcome of one tool call back to the
// model. Content is typically a string but may be structured blocks
// depending on the provider.
type ToolResultContent struct {
	ToolUseID string `json:"tool_use_id"`
	Content   any    `json:"content"`
	IsError   bool   `json:"is_error,omitempty"`
}

func (c *ToolResultContent) Type() ContentType {
	return ContentTypeToolResult
}

func (c *ToolResultContent) MarshalJSON() ([]byte, error) {
	type alias ToolResultContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		*alias
	}{
		Type:  ContentTypeToolResult,
		alias: (*alias)(c),
	})
}

// unmarshalContent decodes one content block by its "type" discriminator.
func unmarshalContent(data []byte) (Content, error) {
	var probe struct {
		Type ContentType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid content block: %w", err)
	}
	switch probe.Type {
	case ContentTypeText:
		var c TextContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case ContentTypeToolUse:
		var c ToolUseContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case ContentTypeToolResult:
		var c ToolResultContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %q", probe.Type)
	}
}
