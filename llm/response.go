package llm

// Response is a single generation returned by an LLM.
type Response struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Role       Role      `json:"role"`
	Content    []Content `json:"content"`
	StopReason string    `json:"stop_reason,omitempty"`
	Usage      Usage     `json:"usage"`
}

// Message returns the response as an assistant message suitable for
// appending to a conversation.
func (r *Response) Message() *Message {
	return &Message{ID: r.ID, Role: Assistant, Content: r.Content}
}

// Text returns the concatenated text blocks of the response.
func (r *Response) Text() string {
	return r.Message().Text()
}

// ToolCalls returns the tool use blocks of the response, in order.
func (r *Response) ToolCalls() []*ToolUseContent {
	var calls []*ToolUseContent
	for _, content := range r.Content {
		if call, ok := content.(*ToolUseContent); ok {
			calls = append(calls, call)
		}
	}
	return calls
}
