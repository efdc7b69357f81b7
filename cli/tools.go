package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bububa/heroku-a2a/tools"
	"github.com/bububa/heroku-a2a/tools/builtin"
)

// NewToolsCmd creates the "tools" subcommand.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools",
		Args:  cobra.NoArgs,
		RunE:  runTools,
	}
	cmd.Flags().Bool("json", false, "Print the tool specs with their schemas as JSON")
	return cmd
}

func runTools(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	registry := builtin.NewRegistry()
	out := cmd.OutOrStdout()

	if asJSON {
		specs := make([]tools.Spec, 0, registry.Len())
		for _, t := range registry.All() {
			specs = append(specs, t.Spec())
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(specs); err != nil {
			return exitError(exitRuntime, "marshaling tool specs: %v", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, t := range registry.All() {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name(), t.Description())
	}
	return tw.Flush()
}
