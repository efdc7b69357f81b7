package agents

import (
	"log/slog"

	"go.uber.org/atomic"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/provider"
	"github.com/bububa/heroku-a2a/components/systemprompt"
	"github.com/bububa/heroku-a2a/components/systemprompt/cot"
	"github.com/bububa/heroku-a2a/config"
	"github.com/bububa/heroku-a2a/tools"
)

// ClientFactory builds the model client of new agents
type ClientFactory func(cfg config.Inference) (components.LLMClient, error)

type FactoryOption func(*Factory)

// WithClientFactory replaces the provider based client construction
func WithClientFactory(fn ClientFactory) FactoryOption {
	return func(f *Factory) {
		f.clientFactory = fn
	}
}

func WithFactoryLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// Factory builds agents bound to the configured model and the tool registry
type Factory struct {
	cfg           config.Config
	registry      *tools.Registry
	clientFactory ClientFactory
	logger        *slog.Logger
	created       atomic.Int64
}

// NewFactory returns a Factory, registry may be nil when agents only get explicit tools
func NewFactory(cfg config.Config, registry *tools.Registry, opts ...FactoryOption) *Factory {
	ret := &Factory{
		cfg:      cfg,
		registry: registry,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.clientFactory == nil {
		ret.clientFactory = provider.New
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

func (f *Factory) Config() config.Config {
	return f.cfg
}

func (f *Factory) Registry() *tools.Registry {
	return f.registry
}

// Created returns the number of agents built so far
func (f *Factory) Created() int64 {
	return f.created.Load()
}

// Client builds a model client, failures are *ConfigurationError
func (f *Factory) Client() (components.LLMClient, error) {
	clt, err := f.clientFactory(f.cfg.Inference)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	return clt, nil
}

// CreateAgent builds a ready agent named name. Its tools are the registry tools
// when useRegistryTools is set followed by explicit. Nothing is executed.
func (f *Factory) CreateAgent(name string, explicit []tools.AnonymousTool, useRegistryTools bool, opts ...Option) (*Agent, error) {
	if name == "" {
		name = f.cfg.Agent.DefaultName
	}
	clt, err := f.Client()
	if err != nil {
		return nil, err
	}
	var list []tools.AnonymousTool
	if useRegistryTools && f.registry != nil {
		list = append(list, f.registry.All()...)
	}
	list = append(list, explicit...)
	options := []Option{
		WithName(name),
		WithClient(clt),
		WithModel(f.cfg.Inference.Model),
		WithTemperature(f.cfg.Agent.Temperature),
		WithMaxTokens(f.cfg.Agent.MaxTokens),
		WithMaxToolRounds(f.cfg.Agent.MaxToolRounds),
		WithTools(list...),
		WithSystemPromptGenerator(ToolUsePrompt()),
		WithLogger(f.logger),
	}
	agent := NewAgent(append(options, opts...)...)
	f.created.Inc()
	f.logger.Debug("agent created", "agent", agent.Name(), "tools", agent.ToolsUsed())
	return agent, nil
}

// ToolUsePrompt returns the system prompt generator of tool using agents
func ToolUsePrompt() systemprompt.Generator {
	return cot.New(
		cot.WithBackground(
			"- You are a helpful assistant powered by Heroku Inference.",
			"- You can call tools to compute results and look up information.",
		),
		cot.WithSteps(
			"- Work out what the user is asking for.",
			"- Decide whether one of the available tools can answer part of the request.",
			"- Call the tools with arguments matching their input schema.",
			"- Combine the tool results into the final answer.",
		),
		cot.WithOutputInstructs(
			"- Answer in plain text.",
			"- When a tool reports an error, explain the problem instead of inventing a result.",
		),
	)
}
