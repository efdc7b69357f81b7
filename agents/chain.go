package agents

import (
	"context"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/schema"
)

// ChainableAgent is a step of a Chain
type ChainableAgent interface {
	Name() string
	RunForChain(context.Context, any, *components.LLMResponse) (any, error)
}

// Chain runs agents one after the other, each step receives the previous step's output
type Chain[I any, O any] struct {
	name   string
	agents []ChainableAgent
}

// NewChain returns a new Chain instance
func NewChain[I any, O any](agents ...ChainableAgent) *Chain[I, O] {
	return &Chain[I, O]{
		name:   "chain",
		agents: agents,
	}
}

func (c *Chain[I, O]) Name() string {
	return c.name
}

func (c *Chain[I, O]) SetName(name string) *Chain[I, O] {
	c.name = name
	return c
}

// Run runs the chained agents with the given user input synchronously.
// The responses of the completed steps are returned even on failure.
func (c *Chain[I, O]) Run(ctx context.Context, input *I, output *O) ([]components.LLMResponse, error) {
	apiRespList := make([]components.LLMResponse, 0, len(c.agents))
	var (
		in  any = input
		out any
	)
	for _, agent := range c.agents {
		apiResp := new(components.LLMResponse)
		ret, err := agent.RunForChain(ctx, in, apiResp)
		if err != nil {
			return apiRespList, newInvocationError(agent.Name(), err)
		}
		in = ret
		out = ret
		apiRespList = append(apiRespList, *apiResp)
	}
	outO, ok := out.(*O)
	if !ok {
		return apiRespList, newInvocationError(c.name, ErrInvalidSchema)
	}
	*output = *outO
	return apiRespList, nil
}

// RunForChain runs the chain as a step of another chain
func (c *Chain[I, O]) RunForChain(ctx context.Context, input any, apiResp *components.LLMResponse) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, newInvocationError(c.name, ErrInvalidSchema)
	}
	out := new(O)
	apiRespList, err := c.Run(ctx, in, out)
	for idx := range apiRespList {
		apiResp.Merge(&apiRespList[idx])
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HandoffPrompt builds the next agent's prompt from the previous answer
type HandoffPrompt func(previous string) string

type handoff struct {
	agent  *Agent
	prompt HandoffPrompt
}

// Handoff wraps agent as a chain step whose prompt embeds the previous step's answer
func Handoff(agent *Agent, prompt HandoffPrompt) ChainableAgent {
	return &handoff{
		agent:  agent,
		prompt: prompt,
	}
}

func (h *handoff) Name() string {
	return h.agent.Name()
}

func (h *handoff) RunForChain(ctx context.Context, input any, apiResp *components.LLMResponse) (any, error) {
	var previous string
	switch v := input.(type) {
	case *schema.Output:
		previous = v.ChatMessage
	case schema.Schema:
		previous = v.String()
	default:
		return nil, newInvocationError(h.agent.Name(), ErrInvalidSchema)
	}
	return h.agent.RunForChain(ctx, schema.NewInput(h.prompt(previous)), apiResp)
}
