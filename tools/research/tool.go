package research

import (
	"context"
	"strings"

	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
)

// Input asks a research agent to look into a topic
type Input struct {
	// Topic The topic to research
	Topic string `json:"topic" jsonschema:"title=topic,description=The topic to research" validate:"required"`
	// Context Additional context for the research request
	Context string `json:"context,omitempty" jsonschema:"title=context,description=Additional context for the research"`
}

func NewInput(topic string, ctx string) *Input {
	return &Input{
		Topic:   topic,
		Context: ctx,
	}
}

func (s Input) String() string {
	return schema.JSON(s)
}

// Prompt renders the request sent to the research agent
func (s Input) Prompt() string {
	var b strings.Builder
	b.WriteString("Please research the following topic: ")
	b.WriteString(s.Topic)
	if s.Context != "" {
		b.WriteString("\n\nContext: ")
		b.WriteString(s.Context)
	}
	return b.String()
}

// Output carries the research agent's findings
type Output struct {
	// Summary The research findings
	Summary string `json:"summary" jsonschema:"title=summary,description=The research findings"`
	// SourceAgent Name of the agent which did the research
	SourceAgent string `json:"source_agent" jsonschema:"title=source_agent,description=Name of the agent which did the research"`
}

func (s Output) String() string {
	return schema.JSON(s)
}

// Runner is the agent the research is delegated to
type Runner interface {
	Name() string
	Ask(ctx context.Context, prompt string) (string, error)
}

// Tool delegates research requests to another agent
type Tool struct {
	tools.Config
	runner Runner
}

func New(runner Runner, opts ...tools.Option) *Tool {
	ret := &Tool{runner: runner}
	tools.Apply(&ret.Config, "research", "Delegate research tasks to a specialized research agent", opts...)
	return ret
}

// Run asks the research agent and wraps its answer
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	summary, err := t.runner.Ask(ctx, input.Prompt())
	if err != nil {
		return nil, err
	}
	return &Output{
		Summary:     summary,
		SourceAgent: t.runner.Name(),
	}, nil
}
