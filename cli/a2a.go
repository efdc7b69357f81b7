package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bububa/heroku-a2a/a2a"
)

// sampleTopics run when a2a is called without a query
var sampleTopics = []a2a.Request{
	{Query: "quantum computing", Context: "Focus on recent breakthroughs and potential applications."},
	{Query: "climate change mitigation strategies", Context: "What are the most promising approaches being developed?"},
	{Query: "advanced machine learning techniques", Context: "How do these compare to traditional algorithms?"},
}

// NewA2ACmd creates the "a2a" subcommand.
func NewA2ACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a2a [query]",
		Short: "Run an agent-to-agent exchange",
		Long:  "Run an agent-to-agent exchange. Without a query the sample topics are run and failures are reported per topic.",
		RunE:  runA2A,
	}
	cmd.Flags().String("context", "", "Additional context for the query")
	cmd.Flags().String("mode", string(a2a.ModeDelegate), "Exchange pattern: delegate | handoff")
	return cmd
}

func runA2A(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	extra, _ := cmd.Flags().GetString("context")
	mode, _ := cmd.Flags().GetString("mode")
	orchestrator := a2a.New(rt.factory, rt.logger)
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		ret, err := orchestrator.Run(cmd.Context(), a2a.Request{
			Query:   strings.Join(args, " "),
			Context: extra,
			Mode:    a2a.Mode(mode),
		})
		if err != nil {
			if errors.Is(err, a2a.ErrInvalidRequest) {
				return exitError(exitValidation, "%v", err)
			}
			return runError(err)
		}
		fmt.Fprintln(out, ret.Response)
		return nil
	}

	fmt.Fprintln(out, "=== Agent-to-Agent Communication Demonstration ===")
	separator := strings.Repeat("-", 40)
	for i, req := range sampleTopics {
		req.Mode = a2a.Mode(mode)
		fmt.Fprintf(out, "\nExample %d: %s\n", i+1, req.Query)
		fmt.Fprintf(out, "Context: %s\n", req.Context)
		fmt.Fprintln(out, separator)
		ret, err := orchestrator.Run(cmd.Context(), req)
		if err != nil {
			if errors.Is(err, a2a.ErrInvalidRequest) {
				return exitError(exitValidation, "%v", err)
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "Response from main agent:\n%s\n", ret.Response)
		}
		fmt.Fprintln(out, separator)
	}
	fmt.Fprintln(out, "\nA2A communication demonstration completed.")
	return nil
}
