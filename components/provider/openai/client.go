// Package openai adapts OpenAI compatible chat completion endpoints, Heroku Inference included
package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/heroku-a2a/components"
)

// ErrEmptyChoices is returned when the completion carries no choice
var ErrEmptyChoices = errors.New("openai: response has no choices")

type Client struct {
	clt *openai.Client
}

var _ components.LLMClient = (*Client)(nil)

// New returns a client for the API rooted at baseURL, "/v1" is appended when missing
func New(apiKey string, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		baseURL = strings.TrimRight(baseURL, "/")
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		cfg.BaseURL = baseURL
	}
	return NewWithClient(openai.NewClientWithConfig(cfg))
}

// NewWithClient wraps an existing go-openai client
func NewWithClient(clt *openai.Client) *Client {
	return &Client{clt: clt}
}

// Request builds the go-openai request for req
func Request(req *components.ChatRequest) openai.ChatCompletionRequest {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Tools:       components.ToolDefinitionsToOpenAI(req.Tools),
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, msg.ToOpenAI()...)
	}
	return chatReq
}

func (c *Client) Chat(ctx context.Context, req *components.ChatRequest) (*components.ChatResponse, error) {
	res, err := c.clt.CreateChatCompletion(ctx, Request(req))
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, ErrEmptyChoices
	}
	msg := res.Choices[0].Message
	ret := &components.ChatResponse{
		Content:   msg.Content,
		ToolCalls: components.ToolCallsFromOpenAI(msg.ToolCalls),
	}
	ret.FromOpenAI(&res)
	return ret, nil
}
