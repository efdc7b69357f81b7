// Package anthropic adapts the Anthropic messages API
package anthropic

import (
	"context"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/bububa/heroku-a2a/components"
)

type Client struct {
	clt *anthropic.Client
}

var _ components.LLMClient = (*Client)(nil)

// New returns a client, an empty baseURL keeps the library default
func New(apiKey string, baseURL string) *Client {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	return &Client{clt: anthropic.NewClient(apiKey, opts...)}
}

// Request builds the go-anthropic request for req
func Request(req *components.ChatRequest) anthropic.MessagesRequest {
	temperature := req.Temperature
	chatReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(req.Model),
		System:      req.System,
		Temperature: &temperature,
		MaxTokens:   req.MaxTokens,
		Tools:       components.ToolDefinitionsToAnthropic(req.Tools),
		Messages:    make([]anthropic.Message, 0, len(req.Messages)),
	}
	for _, msg := range req.Messages {
		v := new(anthropic.Message)
		msg.ToAnthropic(v)
		if len(v.Content) == 0 {
			continue
		}
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	return chatReq
}

func (c *Client) Chat(ctx context.Context, req *components.ChatRequest) (*components.ChatResponse, error) {
	res, err := c.clt.CreateMessages(ctx, Request(req))
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, content := range res.Content {
		if content.Type == anthropic.MessagesContentTypeText && content.Text != nil {
			texts = append(texts, *content.Text)
		}
	}
	ret := &components.ChatResponse{
		Content:   strings.Join(texts, "\n"),
		ToolCalls: components.ToolCallsFromAnthropic(res.Content),
	}
	ret.FromAnthropic(&res)
	return ret, nil
}
