package simple

import (
	"github.com/bububa/heroku-a2a/components/systemprompt"
)

// Generator renders a fixed system prompt followed by the context providers
type Generator struct {
	systemprompt.BaseGenerator
	content string
}

var _ systemprompt.Generator = (*Generator)(nil)

// New returns a new system prompt Generator
func New(content string, options ...Option) *Generator {
	ret := &Generator{content: content}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (g *Generator) Generate() string {
	parts := make([]string, 0, len(g.ContextProviders())*3+2)
	parts = append(parts, g.content, "")
	return systemprompt.Join(g.WriteContext(parts))
}
