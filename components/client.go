package components

import "context"

// LLMClient is a chat completion backend
type LLMClient interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ChatRequest is a provider neutral chat completion request
type ChatRequest struct {
	Model       string
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float32
	MaxTokens   int
}

// ChatResponse is the assistant turn returned by the model.
// A response with ToolCalls asks the caller to run the tools and call again.
type ChatResponse struct {
	LLMResponse
	Content   string
	ToolCalls []ToolCall
}

// LastUserText returns the text of the latest user message
func (r *ChatRequest) LastUserText() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if msg := r.Messages[i]; msg.Role() == UserRole {
			return msg.Text()
		}
	}
	return ""
}
