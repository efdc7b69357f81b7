package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bububa/heroku-a2a/tools"
)

// sampleQueries run when query is called without a prompt
var sampleQueries = []string{
	"What is the capital of France and what's the weather like there today?",
	"Can you calculate the square root of 256 plus 42?",
	"Find me some information about the A2A protocol",
}

// NewQueryCmd creates the "query" subcommand.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [prompt]",
		Short: "Ask the tool-equipped agent a question",
		Long:  "Ask the tool-equipped agent a question. Without a prompt the sample queries are run.",
		RunE:  runQuery,
	}
	cmd.Flags().StringArray("tool", nil, "Restrict the agent to the named tool (repeatable)")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	names, _ := cmd.Flags().GetStringArray("tool")
	registry := rt.factory.Registry()

	var (
		explicit    []tools.AnonymousTool
		useRegistry = true
	)
	if len(names) > 0 {
		explicit = registry.Select(names...)
		useRegistry = false
	}

	queries := sampleQueries
	if len(args) > 0 {
		queries = []string{strings.Join(args, " ")}
	}

	agent, err := rt.factory.CreateAgent("", explicit, useRegistry)
	if err != nil {
		return runError(err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Agent created with tools: %s\n", strings.Join(agent.ToolsUsed(), ", "))
	for i, query := range queries {
		if len(queries) > 1 {
			fmt.Fprintf(out, "\nExample %d: %s\n", i+1, query)
		}
		// each query starts a fresh conversation
		agent.ResetMemory()
		answer, err := agent.Ask(cmd.Context(), query)
		if err != nil {
			return runError(err)
		}
		fmt.Fprintf(out, "Response: %s\n", answer)
	}
	if invoked := agent.ToolsInvoked(); len(invoked) > 0 {
		fmt.Fprintf(out, "Tools invoked: %s\n", strings.Join(invoked, ", "))
	}
	return nil
}
