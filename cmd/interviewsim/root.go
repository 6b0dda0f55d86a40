package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interviewsim",
		Short: "interviewsim - regression harness for interview simulation scenarios",
		Long: `interviewsim simulates synthetic candidate personas against authored
interview scenarios and scores the resulting transcripts against a weighted
rubric.

Without an ANTHROPIC_API_KEY the harness runs fully offline with a
deterministic stub backend, which is the mode CI uses.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
