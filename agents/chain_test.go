package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/provider/echo"
	"github.com/bububa/heroku-a2a/schema"
)

func TestChainHandoff(t *testing.T) {
	first := NewAgent(WithName("first"), WithClient(echo.New()))
	second := NewAgent(WithName("second"), WithClient(echo.New()))
	chain := NewChain[schema.Input, schema.Output](first, Handoff(second, func(previous string) string {
		return "Review this: " + previous
	}))
	out := new(schema.Output)
	resps, err := chain.Run(context.Background(), schema.NewInput("quantum computing"), out)
	require.NoError(t, err)
	assert.Len(t, resps, 2)
	assert.Equal(t, "Review this: quantum computing", out.ChatMessage)
	assert.Equal(t, int64(1), first.ModelCalls())
	assert.Equal(t, int64(1), second.ModelCalls())
}

func TestChainStopsOnFailure(t *testing.T) {
	cause := errors.New("boom")
	first := NewAgent(WithName("first"), WithClient(&scriptedClient{err: cause}))
	second := NewAgent(WithName("second"), WithClient(echo.New()))
	chain := NewChain[schema.Input, schema.Output](first, Handoff(second, func(p string) string { return p }))
	_, err := chain.Run(context.Background(), schema.NewInput("q"), new(schema.Output))
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "first", ie.Agent)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, int64(0), second.ModelCalls())
}

func TestChainAsStep(t *testing.T) {
	inner := NewChain[schema.Input, schema.Output](NewAgent(WithClient(echo.New()))).SetName("inner")
	outer := NewChain[schema.Input, schema.Output](inner)
	out := new(schema.Output)
	_, err := outer.Run(context.Background(), schema.NewInput("nested"), out)
	require.NoError(t, err)
	assert.Equal(t, "nested", out.ChatMessage)

	_, err = inner.RunForChain(context.Background(), "not an input", new(components.LLMResponse))
	assert.ErrorIs(t, err, ErrInvalidSchema)
}
