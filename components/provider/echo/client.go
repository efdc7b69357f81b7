// Package echo is an offline LLMClient answering with the latest user message
package echo

import (
	"context"

	"github.com/bububa/heroku-a2a/components"
)

type Client struct{}

var _ components.LLMClient = Client{}

func New() Client {
	return Client{}
}

func (Client) Chat(ctx context.Context, req *components.ChatRequest) (*components.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ret := &components.ChatResponse{
		Content: req.LastUserText(),
	}
	ret.Role = components.AssistantRole
	ret.Model = req.Model
	return ret, nil
}
