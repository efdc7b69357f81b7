// Package a2a demonstrates agents talking to agents: a main agent delegating
// research through a tool, and a sequential handoff where a reviewer refines
// the first agent's answer.
package a2a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bububa/heroku-a2a/agents"
	"github.com/bububa/heroku-a2a/components/systemprompt"
	"github.com/bububa/heroku-a2a/components/systemprompt/simple"
	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
	"github.com/bububa/heroku-a2a/tools/research"
)

// Mode selects the communication pattern
type Mode = string

const (
	ModeDelegate Mode = "delegate"
	ModeHandoff  Mode = "handoff"
)

const (
	MainAgentName     = "main_agent"
	ResearchAgentName = "research_assistant"
	ReviewerAgentName = "reviewer_agent"
)

// ResearchSystemPrompt is the system prompt of the research assistant
const ResearchSystemPrompt = `You are a research assistant agent that helps the main agent with research tasks.
When asked to research a topic:
1. Consider what's likely already known about the topic
2. Focus on filling knowledge gaps or providing deeper context
3. Structure your response with clear sections and bullet points for readability
4. Include key facts, figures, and definitions relevant to the topic
5. If the query is ambiguous, clarify what specific aspect you're addressing

Your response should be comprehensive yet concise, focusing on quality information
rather than excessive detail. Always maintain a professional, informative tone.`

// ReviewInstruction is sent to the second agent of a handoff together with the first answer
const ReviewInstruction = "Review the response above. Correct any errors, fill in missing details and return an enhanced final answer."

// ErrInvalidRequest is returned by Run for a request failing validation
var ErrInvalidRequest = errors.New("invalid a2a request")

// Request is an A2A query
type Request struct {
	Query   string `json:"query" validate:"required"`
	Context string `json:"context,omitempty"`
	Mode    Mode   `json:"mode,omitempty" validate:"omitempty,oneof=delegate handoff"`
}

// Result is the outcome of an A2A exchange
type Result struct {
	Query    string  `json:"query"`
	// Context is null when the request carried none
	Context  *string `json:"context"`
	Response string  `json:"response"`
	Mode     Mode    `json:"mode"`
}

func (r Result) String() string {
	return schema.JSON(r)
}

// Orchestrator runs the A2A patterns on agents built by a Factory
type Orchestrator struct {
	factory *agents.Factory
	logger  *slog.Logger
}

func New(factory *agents.Factory, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		factory: factory,
		logger:  logger,
	}
}

// Run validates req and runs the requested pattern, delegate by default
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Mode == "" {
		req.Mode = ModeDelegate
	}
	if err := tools.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	o.logger.InfoContext(ctx, "a2a exchange", "mode", req.Mode, "query", req.Query)
	var (
		response string
		err      error
	)
	switch req.Mode {
	case ModeHandoff:
		response, err = o.Handoff(ctx, req.Query, req.Context)
	default:
		response, err = o.Demonstrate(ctx, req.Query, req.Context)
	}
	if err != nil {
		return nil, err
	}
	ret := &Result{
		Query:    req.Query,
		Response: response,
		Mode:     req.Mode,
	}
	if req.Context != "" {
		ret.Context = &req.Context
	}
	return ret, nil
}

// ContextTitle titles the request context section of the helper agents' system prompt
const ContextTitle = "Context"

// ResearchAgent builds the tool-less research assistant
func (o *Orchestrator) ResearchAgent() (*agents.Agent, error) {
	return o.factory.CreateAgent(ResearchAgentName, nil, false,
		agents.WithSystemPromptGenerator(simple.New(ResearchSystemPrompt)),
	)
}

// withContext exposes the request context to agent through its system prompt
func withContext(agent *agents.Agent, extra string) {
	if extra == "" {
		return
	}
	agent.RegisterSystemPromptContextProvider(systemprompt.NewStaticContext(ContextTitle, extra))
}

// Demonstrate lets the main agent, equipped with the registry tools and the
// research tool, answer the query and delegate research when it sees fit.
func (o *Orchestrator) Demonstrate(ctx context.Context, query string, extra string) (string, error) {
	assistant, err := o.ResearchAgent()
	if err != nil {
		return "", err
	}
	withContext(assistant, extra)
	researchTool := tools.Anonymous[research.Input, research.Output](research.New(assistant))
	mainAgent, err := o.factory.CreateAgent(MainAgentName, []tools.AnonymousTool{researchTool}, true)
	if err != nil {
		return "", err
	}
	return mainAgent.Ask(ctx, DelegatePrompt(query, extra))
}

// Handoff asks a first agent, then has a reviewer correct and enhance its answer
func (o *Orchestrator) Handoff(ctx context.Context, query string, extra string) (string, error) {
	first, err := o.factory.CreateAgent(MainAgentName, nil, true)
	if err != nil {
		return "", err
	}
	reviewer, err := o.factory.CreateAgent(ReviewerAgentName, nil, false)
	if err != nil {
		return "", err
	}
	withContext(reviewer, extra)
	chain := agents.NewChain[schema.Input, schema.Output](first, agents.Handoff(reviewer, func(previous string) string {
		return ReviewPrompt(query, previous)
	})).SetName("handoff")
	out := new(schema.Output)
	if _, err := chain.Run(ctx, schema.NewInput(QueryPrompt(query, extra)), out); err != nil {
		return "", err
	}
	return out.ChatMessage, nil
}

// DelegatePrompt is the main agent prompt of the delegate pattern
func DelegatePrompt(query string, extra string) string {
	return fmt.Sprintf("I need information about '%s'. %s Use the research tool if needed.", query, extra)
}

// QueryPrompt appends the optional context to query
func QueryPrompt(query string, extra string) string {
	if extra == "" {
		return query
	}
	return query + "\n\nContext: " + extra
}

// ReviewPrompt embeds the previous answer verbatim for the reviewer
func ReviewPrompt(query string, previous string) string {
	var b strings.Builder
	b.WriteString("Original query: ")
	b.WriteString(query)
	b.WriteString("\n\nResponse from the previous agent:\n")
	b.WriteString(previous)
	b.WriteString("\n\n")
	b.WriteString(ReviewInstruction)
	return b.String()
}
