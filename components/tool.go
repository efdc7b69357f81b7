package components

import (
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ToolDefinition describes a callable tool to the model
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Parameters is the JSON schema of the tool arguments
	Parameters any `json:"parameters,omitempty"`
}

func ToolDefinitionsToOpenAI(src []ToolDefinition) []openai.Tool {
	if len(src) == 0 {
		return nil
	}
	list := make([]openai.Tool, 0, len(src))
	for _, v := range src {
		list = append(list, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        v.Name,
				Description: v.Description,
				Parameters:  v.Parameters,
			},
		})
	}
	return list
}

func ToolDefinitionsToAnthropic(src []ToolDefinition) []anthropic.ToolDefinition {
	if len(src) == 0 {
		return nil
	}
	list := make([]anthropic.ToolDefinition, 0, len(src))
	for _, v := range src {
		list = append(list, anthropic.ToolDefinition{
			Name:        v.Name,
			Description: v.Description,
			InputSchema: v.Parameters,
		})
	}
	return list
}

// ToolCall is a tool invocation requested by the model
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

func ToolCallsToOpenAI(src []ToolCall) []openai.ToolCall {
	list := make([]openai.ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ToolCall{
			ID:   v.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      v.Name,
				Arguments: v.Arguments,
			},
		})
	}
	return list
}

func ToolCallsFromOpenAI(src []openai.ToolCall) []ToolCall {
	if len(src) == 0 {
		return nil
	}
	list := make([]ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, ToolCall{
			ID:        v.ID,
			Name:      v.Function.Name,
			Arguments: v.Function.Arguments,
		})
	}
	return list
}

func ToolCallsToAnthropic(src []ToolCall) []anthropic.MessageContent {
	list := make([]anthropic.MessageContent, 0, len(src))
	for _, v := range src {
		args := json.RawMessage(v.Arguments)
		if !json.Valid(args) {
			args = json.RawMessage("{}")
		}
		list = append(list, anthropic.NewToolUseMessageContent(v.ID, v.Name, args))
	}
	return list
}

// ToolCallsFromAnthropic extracts the tool_use blocks of a response
func ToolCallsFromAnthropic(src []anthropic.MessageContent) []ToolCall {
	var list []ToolCall
	for _, v := range src {
		if v.Type != anthropic.MessagesContentTypeToolUse || v.MessageContentToolUse == nil {
			continue
		}
		args := string(v.MessageContentToolUse.Input)
		if args == "" {
			args = "{}"
		}
		list = append(list, ToolCall{
			ID:        v.MessageContentToolUse.ID,
			Name:      v.MessageContentToolUse.Name,
			Arguments: args,
		})
	}
	return list
}

// ToolCallback is the result of a tool call sent back to the model
type ToolCallback struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

func ToolCallbacksToOpenAI(src []ToolCallback) []openai.ChatCompletionMessage {
	list := make([]openai.ChatCompletionMessage, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    v.Content,
			Name:       v.Name,
			ToolCallID: v.ID,
		})
	}
	return list
}

func ToolCallbacksToAnthropic(src []ToolCallback, dist *anthropic.Message) {
	list := make([]anthropic.MessageContent, 0, len(src))
	for _, v := range src {
		list = append(list, anthropic.NewToolResultMessageContent(v.ID, v.Content, v.IsError))
	}
	dist.Role = anthropic.RoleUser
	dist.Content = list
}
