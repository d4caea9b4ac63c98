package agent

import "github.com/deepnoodle-ai/skillet/llm"

// Conversation is the transcript of a single agent run. Messages are
// appended in the order they occur and never mutated or removed: one
// system message, one user message, then alternating assistant and tool
// messages until the run ends.
type Conversation struct {
	messages []*llm.Message
}

func (c *Conversation) append(message *llm.Message) {
	c.messages = append(c.messages, message)
}

// Messages returns the transcript in order. The slice is a copy, so the
// caller may hold it across later appends.
func (c *Conversation) Messages() []*llm.Message {
	messages := make([]*llm.Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// LastMessage returns the most recent message, or nil for an empty
// transcript.
func (c *Conversation) LastMessage() *llm.Message {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// LastAssistantText returns the text of the most recent assistant
// message. Tool use blocks are ignored; an empty string means the
// transcript holds no assistant text.
func (c *Conversation) LastAssistantText() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		message := c.messages[i]
		if message.Role != llm.Assistant {
			continue
		}
		if text := message.Text(); text != "" {
			return text
		}
	}
	return ""
}
