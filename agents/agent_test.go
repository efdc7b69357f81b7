package agents

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/provider/echo"
	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
	"github.com/bububa/heroku-a2a/tools/builtin"
)

// scriptedClient replays responses in order, then answers "done"
type scriptedClient struct {
	mu        sync.Mutex
	responses []*components.ChatResponse
	requests  []*components.ChatRequest
	err       error
}

func (c *scriptedClient) Chat(ctx context.Context, req *components.ChatRequest) (*components.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return &components.ChatResponse{Content: "done"}, nil
	}
	ret := c.responses[0]
	c.responses = c.responses[1:]
	return ret, nil
}

func toolCall(id, name, args string) *components.ChatResponse {
	ret := &components.ChatResponse{
		ToolCalls: []components.ToolCall{{ID: id, Name: name, Arguments: args}},
	}
	ret.Usage = &components.LLMUsage{InputTokens: 1, OutputTokens: 1}
	return ret
}

func TestAgentAsk(t *testing.T) {
	agent := NewAgent(WithName("echo"), WithClient(echo.New()))
	answer, err := agent.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", answer)
	assert.Equal(t, 2, agent.Memory().MessageCount())
	assert.Equal(t, int64(1), agent.ModelCalls())
	assert.Empty(t, agent.ToolsInvoked())
}

func TestAgentToolLoop(t *testing.T) {
	clt := &scriptedClient{responses: []*components.ChatResponse{
		toolCall("call_1", "calculator", `{"expression":"2+2"}`),
		{Content: "The answer is 4"},
	}}
	agent := NewAgent(WithClient(clt), WithTools(builtin.Calculator(), builtin.Search()))
	var resp components.LLMResponse
	out := new(schema.Output)
	require.NoError(t, agent.Run(context.Background(), schema.NewInput("what is 2+2?"), out, &resp))
	assert.Equal(t, "The answer is 4", out.ChatMessage)
	assert.Equal(t, []string{"calculator"}, agent.ToolsInvoked())
	assert.Equal(t, []string{"calculator", "search"}, agent.ToolsUsed())
	assert.Equal(t, int64(1), agent.ToolCalls())
	assert.Equal(t, int64(1), resp.Usage.InputTokens)

	require.Len(t, clt.requests, 2)
	first := clt.requests[0]
	require.Len(t, first.Tools, 2)
	assert.Equal(t, "calculator", first.Tools[0].Name)
	assert.NotEmpty(t, first.System)

	second := clt.requests[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, components.AssistantRole, second[1].Role())
	callbacks := second[2].ToolCallbacks()
	require.Len(t, callbacks, 1)
	assert.Equal(t, "call_1", callbacks[0].ID)
	assert.False(t, callbacks[0].IsError)
	assert.JSONEq(t, `{"result":4,"expression":"2+2"}`, callbacks[0].Content)
}

func TestAgentToolFailuresReachModel(t *testing.T) {
	clt := &scriptedClient{responses: []*components.ChatResponse{
		toolCall("call_1", "weather", `{}`),
		toolCall("call_2", "search", `{"max_results":2}`),
		toolCall("call_3", "calculator", `{"expression":"1/0"}`),
	}}
	agent := NewAgent(WithClient(clt), WithTools(builtin.Calculator(), builtin.Search()))
	answer, err := agent.Ask(context.Background(), "break things")
	require.NoError(t, err)
	assert.Equal(t, "done", answer)
	require.Len(t, clt.requests, 4)

	last := clt.requests[3].Messages
	notFound := last[2].ToolCallbacks()[0]
	assert.True(t, notFound.IsError)
	assert.Contains(t, notFound.Content, tools.ErrorCodeNotFound)
	invalid := last[4].ToolCallbacks()[0]
	assert.True(t, invalid.IsError)
	assert.Contains(t, invalid.Content, tools.ErrorCodeInvalidInput)
	divide := last[6].ToolCallbacks()[0]
	assert.False(t, divide.IsError)
	assert.Contains(t, divide.Content, "division by zero")

	assert.Equal(t, []string{"search", "calculator"}, agent.ToolsInvoked())
}

func TestAgentToolRoundLimit(t *testing.T) {
	clt := &scriptedClient{}
	for i := 0; i < 5; i++ {
		clt.responses = append(clt.responses, toolCall("call", "calculator", `{"expression":"1+1"}`))
	}
	agent := NewAgent(WithName("looper"), WithClient(clt), WithTools(builtin.Calculator()), WithMaxToolRounds(2))
	_, err := agent.Ask(context.Background(), "loop")
	require.Error(t, err)
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "looper", ie.Agent)
	assert.ErrorIs(t, err, ErrToolRoundsExceeded)
	assert.Equal(t, int64(3), agent.ModelCalls())
	assert.Equal(t, int64(2), agent.ToolCalls())
	assert.Equal(t, 0, agent.Memory().MessageCount())
}

func TestAgentModelFailure(t *testing.T) {
	cause := errors.New("upstream 503")
	agent := NewAgent(WithName("failing"), WithClient(&scriptedClient{err: cause}))
	var hooked error
	agent.SetErrorHook(func(_ context.Context, _ *Agent, _ *schema.Input, _ *components.LLMResponse, err error) {
		hooked = err
	})
	_, err := agent.Ask(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, err, hooked)
	assert.Equal(t, "agent failing: upstream 503", err.Error())
	assert.Equal(t, 0, agent.Memory().MessageCount())

	_, err = NewAgent().Ask(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestAgentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clt := &scriptedClient{}
	_, err := NewAgent(WithClient(clt)).Ask(ctx, "hi")
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, clt.requests)
}

func TestAgentDuplicateToolNames(t *testing.T) {
	first := tools.Anonymous[schema.Input, schema.Output](&staticTool{name: "calculator", reply: "first"})
	clt := &scriptedClient{responses: []*components.ChatResponse{
		toolCall("call_1", "calculator", `{"chat_message":"x"}`),
	}}
	agent := NewAgent(WithClient(clt), WithTools(first, builtin.Calculator()))
	_, err := agent.Ask(context.Background(), "which one?")
	require.NoError(t, err)
	require.Len(t, clt.requests[0].Tools, 2)
	assert.JSONEq(t, `{"chat_message":"first"}`, clt.requests[1].Messages[2].ToolCallbacks()[0].Content)
}

func TestAgentHooks(t *testing.T) {
	agent := NewAgent(WithClient(echo.New()))
	var events []string
	agent.SetStartHook(func(_ context.Context, _ *Agent, in *schema.Input) {
		events = append(events, "start:"+in.ChatMessage)
	})
	agent.SetEndHook(func(_ context.Context, _ *Agent, _ *schema.Input, out *schema.Output, _ *components.LLMResponse) {
		events = append(events, "end:"+out.ChatMessage)
	})
	_, err := agent.Ask(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"start:ping", "end:ping"}, events)
}

type staticTool struct {
	tools.Config
	name  string
	reply string
}

func (s *staticTool) Name() string {
	return s.name
}

func (s *staticTool) Run(_ context.Context, _ *schema.Input) (*schema.Output, error) {
	return schema.NewOutput(s.reply), nil
}

func TestAgentFailedTurnDropped(t *testing.T) {
	clt := &scriptedClient{responses: []*components.ChatResponse{{Content: "first"}}}
	agent := NewAgent(WithClient(clt))
	answer, err := agent.Ask(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, "first", answer)
	turnID := agent.Memory().TurnID()

	clt.err = errors.New("upstream 503")
	_, err = agent.Ask(context.Background(), "two")
	require.Error(t, err)
	history := agent.Memory().History()
	require.Len(t, history, 2)
	assert.Equal(t, "one", history[0].Text())
	assert.Equal(t, "first", history[1].Text())
	assert.Equal(t, turnID, agent.Memory().TurnID())
}

func TestAgentRunNilOutput(t *testing.T) {
	clt := &scriptedClient{responses: []*components.ChatResponse{{Content: "ok"}}}
	agent := NewAgent(WithClient(clt))
	require.NoError(t, agent.Run(context.Background(), schema.NewInput("hi"), nil, nil))
	history := agent.Memory().History()
	require.Len(t, history, 2)
	assert.Equal(t, "ok", history[1].Text())
}

func TestAgentResetMemory(t *testing.T) {
	clt := &scriptedClient{}
	agent := NewAgent(WithClient(clt))
	_, err := agent.Ask(context.Background(), "one")
	require.NoError(t, err)
	agent.ResetMemory()
	_, err = agent.Ask(context.Background(), "two")
	require.NoError(t, err)
	require.Len(t, clt.requests, 2)
	require.Len(t, clt.requests[1].Messages, 1)
	assert.Equal(t, "two", clt.requests[1].LastUserText())
}
