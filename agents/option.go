package agents

import (
	"log/slog"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/systemprompt"
	"github.com/bububa/heroku-a2a/tools"
)

type Option func(a *Config)

func WithClient(clt components.LLMClient) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPromptGenerator = g
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

// WithTools sets the tools the model may call, earlier tools win on duplicate names
func WithTools(list ...tools.AnonymousTool) Option {
	return func(c *Config) {
		c.tools = list
	}
}

// WithMaxToolRounds limits how many times the model may request tools in one run, 0 disables tool calls
func WithMaxToolRounds(n int) Option {
	return func(c *Config) {
		c.maxToolRounds = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
