// Package cmd implements the CLI commands for MarkPipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

var rootCmd = &cobra.Command{
	Use:   "markpipe",
	Short: "MarkPipe — convert web pages and HTML files into Markdown",
	Long: `MarkPipe is a deterministic conversion pipeline that turns web pages and
local HTML files into Markdown, PDF, or structured JSON.

Usage:
  markpipe convert <url-or-file> [flags]`,
}

// Execute runs the root command with a context-scoped logger.
func Execute() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx := pslog.ContextWithLogger(context.Background(), logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
