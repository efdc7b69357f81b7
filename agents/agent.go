package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/systemprompt"
	"github.com/bububa/heroku-a2a/components/systemprompt/cot"
	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
)

// DefaultMaxToolRounds is the tool round limit of agents built without WithMaxToolRounds
const DefaultMaxToolRounds = 8

// Config represents general agents configuration
type Config struct {
	// client Client for interacting with the language model
	client components.LLMClient
	// memory Memory component for storing chat history.
	memory *components.Memory
	// systemPromptGenerator Component for generating system prompts.
	systemPromptGenerator systemprompt.Generator
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// name is Agent name presentation
	name string
	// tools the model may call
	tools []tools.AnonymousTool
	// maxToolRounds bounds the tool calling loop
	maxToolRounds int
	logger        *slog.Logger
}

// Agent handles chat interactions: it keeps the memory, generates the system prompt,
// obtains responses from the language model and runs the tools the model asks for.
type Agent struct {
	Config
	modelCalls atomic.Int64
	toolCalls  atomic.Int64
	mu         sync.Mutex
	invoked    []string
	startHook  func(context.Context, *Agent, *schema.Input)
	endHook    func(context.Context, *Agent, *schema.Input, *schema.Output, *components.LLMResponse)
	errorHook  func(context.Context, *Agent, *schema.Input, *components.LLMResponse, error)
}

// NewAgent initializes the Agent
func NewAgent(options ...Option) *Agent {
	ret := new(Agent)
	ret.maxToolRounds = DefaultMaxToolRounds
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.memory == nil {
		ret.memory = components.NewMemory(0)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = cot.New()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// ResetMemory clears the chat history
func (a *Agent) ResetMemory() {
	a.memory.Reset()
}

func (a *Agent) Memory() *components.Memory {
	return a.memory
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Model() string {
	return a.model
}

// Tools returns the tools attached to the agent
func (a *Agent) Tools() []tools.AnonymousTool {
	return a.tools
}

// Tool returns the first attached tool named name
func (a *Agent) Tool(name string) tools.AnonymousTool {
	for _, t := range a.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// ToolsUsed returns the names of the attached tools
func (a *Agent) ToolsUsed() []string {
	return tools.Names(a.tools)
}

// ToolsInvoked returns the names of the tools the model called, in first call order
func (a *Agent) ToolsInvoked() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ret := make([]string, len(a.invoked))
	copy(ret, a.invoked)
	return ret
}

// ModelCalls returns the number of model requests made by the agent
func (a *Agent) ModelCalls() int64 {
	return a.modelCalls.Load()
}

// ToolCalls returns the number of tool executions made by the agent
func (a *Agent) ToolCalls() int64 {
	return a.toolCalls.Load()
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, *schema.Input)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, *schema.Input, *schema.Output, *components.LLMResponse)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, *schema.Input, *components.LLMResponse, error)) {
	a.errorHook = fn
}

// Run runs the chat agent with the given user input synchronously.
// Failures are returned as *InvocationError.
func (a *Agent) Run(ctx context.Context, userInput *schema.Input, output *schema.Output, apiResp *components.LLMResponse) error {
	if apiResp == nil {
		apiResp = new(components.LLMResponse)
	}
	if output == nil {
		output = new(schema.Output)
	}
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	var turnID string
	if userInput != nil {
		turnID = a.memory.NewTurn()
		a.memory.NewMessage(components.UserRole, *userInput)
	}
	content, err := a.response(ctx, apiResp)
	if err != nil {
		// a failed turn leaves no trace in the history
		if turnID != "" {
			_ = a.memory.DeleteTurn(turnID)
		}
		err = newInvocationError(a.name, err)
		a.logger.ErrorContext(ctx, "agent run failed", "agent", a.name, "error", err)
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, userInput, apiResp, err)
		}
		return err
	}
	output.ChatMessage = content
	a.memory.NewMessage(components.AssistantRole, *output)
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, output, apiResp)
	}
	return nil
}

// Ask runs the agent on a plain text prompt and returns the text answer
func (a *Agent) Ask(ctx context.Context, prompt string) (string, error) {
	out := new(schema.Output)
	if err := a.Run(ctx, schema.NewInput(prompt), out, nil); err != nil {
		return "", err
	}
	return out.ChatMessage, nil
}

// RunForChain runs the chat agent with the given user input for chain.
func (a *Agent) RunForChain(ctx context.Context, userInput any, apiResp *components.LLMResponse) (any, error) {
	in, ok := userInput.(*schema.Input)
	if !ok {
		return nil, newInvocationError(a.name, ErrInvalidSchema)
	}
	out := new(schema.Output)
	if err := a.Run(ctx, in, out, apiResp); err != nil {
		return nil, err
	}
	return out, nil
}

// response drives the model until it answers without requesting tools
func (a *Agent) response(ctx context.Context, apiResp *components.LLMResponse) (string, error) {
	if a.client == nil {
		return "", ErrNoClient
	}
	defs := a.toolDefinitions()
	system := a.SystemPrompt()
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		req := &components.ChatRequest{
			Model:       a.model,
			System:      system,
			Messages:    a.memory.History(),
			Tools:       defs,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		}
		a.logger.DebugContext(ctx, "model request", "agent", a.name, "round", round, "messages", len(req.Messages), "tools", len(defs))
		a.modelCalls.Inc()
		res, err := a.client.Chat(ctx, req)
		if err != nil {
			return "", err
		}
		apiResp.Merge(&res.LLMResponse)
		if len(res.ToolCalls) == 0 {
			return res.Content, nil
		}
		if round >= a.maxToolRounds {
			return "", fmt.Errorf("%w: %d", ErrToolRoundsExceeded, a.maxToolRounds)
		}
		a.memory.AddMessage(components.NewToolCallsMessage(res.Content, res.ToolCalls))
		a.memory.AddMessage(components.NewToolCallbacksMessage(a.callTools(ctx, res.ToolCalls)))
	}
}

func (a *Agent) toolDefinitions() []components.ToolDefinition {
	if len(a.tools) == 0 || a.maxToolRounds == 0 {
		return nil
	}
	defs := make([]components.ToolDefinition, 0, len(a.tools))
	for _, t := range a.tools {
		spec := t.Spec()
		defs = append(defs, components.ToolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.InputSchema,
		})
	}
	return defs
}

// callTools runs the requested tools in order, failures become error results for the model
func (a *Agent) callTools(ctx context.Context, calls []components.ToolCall) []components.ToolCallback {
	ret := make([]components.ToolCallback, 0, len(calls))
	for _, call := range calls {
		cb := components.ToolCallback{
			ID:   call.ID,
			Name: call.Name,
		}
		content, err := a.callTool(ctx, call)
		if err != nil {
			a.logger.WarnContext(ctx, "tool call failed", "agent", a.name, "tool", call.Name, "error", err)
			cb.Content = err.Error()
			cb.IsError = true
		} else {
			a.logger.DebugContext(ctx, "tool call", "agent", a.name, "tool", call.Name)
			cb.Content = content
		}
		ret = append(ret, cb)
	}
	return ret
}

func (a *Agent) callTool(ctx context.Context, call components.ToolCall) (string, error) {
	t := a.Tool(call.Name)
	if t == nil {
		return "", tools.NewToolError(call.Name, tools.ErrorCodeNotFound, fmt.Sprintf("tool '%s' not found", call.Name), nil)
	}
	a.recordInvocation(t.Name())
	a.toolCalls.Inc()
	out, err := t.Call(ctx, json.RawMessage(call.Arguments))
	if err != nil {
		return "", err
	}
	return schema.JSON(out), nil
}

func (a *Agent) recordInvocation(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range a.invoked {
		if v == name {
			return
		}
	}
	a.invoked = append(a.invoked, name)
}

// RegisterSystemPromptContextProvider registers a new context provider
func (a *Agent) RegisterSystemPromptContextProvider(provider systemprompt.ContextProvider) {
	a.systemPromptGenerator.AddContextProviders(provider)
}

// SystemPrompt returns the system prompt
func (a *Agent) SystemPrompt() string {
	return a.systemPromptGenerator.Generate()
}
