package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bububa/heroku-a2a/a2a"
	"github.com/bububa/heroku-a2a/server"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().IntP("port", "p", 0, "Listen port (default from PORT or config)")
	cmd.Flags().String("host", "", "Listen host")
	cmd.Flags().Int64("max-body", 0, "Max request body size in bytes (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	maxBody, _ := cmd.Flags().GetInt64("max-body")
	if port == 0 {
		port = rt.cfg.Server.Port
	}
	if maxBody == 0 {
		maxBody = rt.cfg.Server.MaxBodyBytes
	}
	if rt.cfg.Inference.RequiresKey() && rt.cfg.Inference.APIKey == "" {
		rt.logger.Warn("INFERENCE_API_KEY is not set, queries will fail")
	}

	srv := server.NewServer(server.Config{
		Factory:      rt.factory,
		Orchestrator: a2a.New(rt.factory, rt.logger),
		APIKey:       rt.cfg.Server.APIKey,
		MaxBody:      maxBody,
		Logger:       rt.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := host + ":" + strconv.Itoa(port)
	fmt.Fprintf(cmd.OutOrStdout(), "herokuagent listening on %s\n", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return exitError(exitRuntime, "server error: %v", err)
	}
	return nil
}
