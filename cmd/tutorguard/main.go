package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tutorguard/tutorguard/cmd/tutorguard/commands"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	logging.InitFromEnv()
	defer logging.Sync()

	rootCmd := &cobra.Command{
		Use:   "tutorguard",
		Short: "Safety moderation pipeline for a children's tutoring assistant",
		Long: `tutorguard sits between a student's chat message and the LLM backend.

Every message is normalized, classified for crisis signals, manipulation
attempts, and out-of-scope subjects, then either answered with a scripted
safety reply or forwarded to the model with the conversation history.

Common workflows:
  tutorguard serve            # Run the HTTP API and metrics endpoints
  tutorguard chat             # Interactive single-session chat in the terminal`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(commands.NewServeCmd())
	rootCmd.AddCommand(commands.NewChatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
