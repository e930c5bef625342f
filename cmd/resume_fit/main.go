// Package main provides the resume_fit command line: one-shot analyses and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_fit",
	Short: "Resume skill analysis and job fit scoring",
	Long: `resume_fit extracts skills from a resume, ranks it against the role catalog,
scores it against a job description and recommends what to learn next.

Configuration is read from --config, RESUME_FIT_* environment variables and flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
