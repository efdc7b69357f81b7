// Package cli implements the herokuagent commands
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bububa/heroku-a2a/agents"
	"github.com/bububa/heroku-a2a/config"
	"github.com/bububa/heroku-a2a/tools/builtin"
)

// NewRootCmd creates the herokuagent command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "herokuagent",
		Short: "Heroku inference agent with tools and agent-to-agent orchestration",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")
	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.SetVersionTemplate(fmt.Sprintf("herokuagent version %s\n", version))

	root.AddCommand(NewServeCmd())
	root.AddCommand(NewQueryCmd())
	root.AddCommand(NewA2ACmd())
	root.AddCommand(NewToolsCmd())
	return root
}

// runtime is what every command needs to build agents
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	factory *agents.Factory
}

func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(path)
	if err != nil {
		return nil, exitError(exitConfig, "%v", err)
	}
	logger.Debug("config loaded", "provider", cfg.Inference.Provider, "model", cfg.Inference.Model, "url", cfg.Inference.URL)
	return &runtime{
		cfg:     cfg,
		logger:  logger,
		factory: agents.NewFactory(cfg, builtin.NewRegistry(), agents.WithFactoryLogger(logger)),
	}, nil
}

// runError maps agent failures to exit codes
func runError(err error) error {
	var ce *agents.ConfigurationError
	if errors.As(err, &ce) {
		return exitError(exitConfig, "%v", err)
	}
	return exitError(exitRuntime, "%v", err)
}
