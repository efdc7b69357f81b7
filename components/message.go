package components

import (
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/heroku-a2a/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message Represents a message in the chat history.
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	// turnID is Unique identifier for the turn this message belongs to.
	turnID string
	// toolCalls are the tool invocations requested by an assistant message
	toolCalls []ToolCall
	// toolCallbacks are the results answering the previous tool calls
	toolCallbacks []ToolCallback
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolCallsMessage returns the assistant message requesting tool calls
func NewToolCallsMessage(content string, calls []ToolCall) *Message {
	msg := NewMessage(AssistantRole, schema.NewString(content))
	msg.toolCalls = calls
	return msg
}

// NewToolCallbacksMessage returns the message carrying tool results
func NewToolCallbacksMessage(callbacks []ToolCallback) *Message {
	msg := NewMessage(ToolRole, nil)
	msg.toolCallbacks = callbacks
	return msg
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// Text returns the content rendered for the model
func (m Message) Text() string {
	return schema.Stringify(m.content)
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

func (m Message) ToolCallbacks() []ToolCallback {
	return m.toolCallbacks
}

// ToOpenAI convert message to openai ChatCompletionMessages, tool results expand to one message per call
func (m Message) ToOpenAI() []openai.ChatCompletionMessage {
	if len(m.toolCallbacks) > 0 {
		return ToolCallbacksToOpenAI(m.toolCallbacks)
	}
	dist := openai.ChatCompletionMessage{
		Role:    m.role,
		Content: m.Text(),
	}
	if len(m.toolCalls) > 0 {
		dist.ToolCalls = ToolCallsToOpenAI(m.toolCalls)
	}
	return []openai.ChatCompletionMessage{dist}
}

// ToAnthropic convert message to anthropic Message
func (m Message) ToAnthropic(dist *anthropic.Message) {
	if len(m.toolCallbacks) > 0 {
		ToolCallbacksToAnthropic(m.toolCallbacks, dist)
		return
	}
	dist.Role = anthropic.RoleUser
	if m.role == AssistantRole {
		dist.Role = anthropic.RoleAssistant
	}
	dist.Content = make([]anthropic.MessageContent, 0, len(m.toolCalls)+1)
	if text := m.Text(); text != "" {
		dist.Content = append(dist.Content, anthropic.NewTextMessageContent(text))
	}
	dist.Content = append(dist.Content, ToolCallsToAnthropic(m.toolCalls)...)
}
