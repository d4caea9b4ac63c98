package llm

import (
	"encoding/json"
	"strings"
)

// Role identifies the author of a message.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
	ToolRole  Role = "tool"
)

func (r Role) String() string {
	return string(r)
}

// Message is one entry in a conversation: an author role plus an ordered
// list of content blocks.
type Message struct {
	ID      string    `json:"id,omitempty"`
	Role    Role      `json:"role"`
	Content []Content `json:"content"`
}

// NewMessage creates a message with the given role and content.
func NewMessage(role Role, content []Content) *Message {
	return &Message{Role: role, Content: content}
}

// NewSystemTextMessage creates a system message containing one text block.
func NewSystemTextMessage(text string) *Message {
	return &Message{
		Role:    System,
		Content: []Content{&TextContent{Text: text}},
	}
}

// NewUserTextMessage creates a user message containing one text block.
func NewUserTextMessage(text string) *Message {
	return &Message{
		Role:    User,
		Content: []Content{&TextContent{Text: text}},
	}
}

// NewAssistantTextMessage creates an assistant message containing one
// text block.
func NewAssistantTextMessage(text string) *Message {
	return &Message{
		Role:    Assistant,
		Content: []Content{&TextContent{Text: text}},
	}
}

// NewToolResultMessage creates a tool message carrying the given results.
func NewToolResultMessage(results ...*ToolResultContent) *Message {
	content := make([]Content, 0, len(results))
	for _, result := range results {
		content = append(content, result)
	}
	return &Message{Role: ToolRole, Content: content}
}

// WithText appends one text block per given string and returns the
// message for chaining.
func (m *Message) WithText(texts ...string) *Message {
	for _, text := range texts {
		m.Content = append(m.Content, &TextContent{Text: text})
	}
	return m
}

// Text returns the concatenated text blocks of the message, separated by
// two newlines. Non-text blocks are skipped.
func (m *Message) Text() string {
	var sb strings.Builder
	for _, content := range m.Content {
		if text, ok := content.(*TextContent); ok {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

// LastText returns the text of the last text block, or "" if there is none.
func (m *Message) LastText() string {
	for i := len(m.Content) - 1; i >= 0; i-- {
		if text, ok := m.Content[i].(*TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string            `json:"id,omitempty"`
		Role    Role              `json:"role"`
		Content []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.ID = raw.ID
	m.Role = raw.Role
	m.Content = make([]Content, 0, len(raw.Content))
	for _, block := range raw.Content {
		content, err := unmarshalContent(block)
		if err != nil {
			return err
		}
		m.Content = append(m.Content, content)
	}
	return nil
}
