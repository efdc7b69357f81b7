package cot

import (
	"fmt"

	"github.com/bububa/heroku-a2a/components/systemprompt"
)

// Generator is Chain-of-Thought system prompt generator
type Generator struct {
	systemprompt.BaseGenerator
	background      []string
	steps           []string
	outputInstructs []string
}

var _ systemprompt.Generator = (*Generator)(nil)

// New returns a new system prompt Generator
func New(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.background) == 0 {
		ret.background = []string{"- This is a conversation with a helpful and friendly AI assistant."}
	}
	if len(ret.outputInstructs) == 0 {
		ret.outputInstructs = []string{"- Always use the available additional information and context to enhance the response."}
	}
	return ret
}

func (g *Generator) Generate() string {
	var (
		titles   = []string{"IDENTITY and PURPOSE", "INTERNAL ASSISTANT STEPS", "OUTPUT INSTRUCTIONS"}
		sections = [][]string{g.background, g.steps, g.outputInstructs}
		parts    []string
	)
	for idx, title := range titles {
		if content := sections[idx]; len(content) > 0 {
			parts = append(parts, fmt.Sprintf("# %s", title))
			parts = append(parts, content...)
			parts = append(parts, "")
		}
	}
	return systemprompt.Join(g.WriteContext(parts))
}
