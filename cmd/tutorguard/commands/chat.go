package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tutorguard/tutorguard/pkg/session"
)

// NewChatCmd creates the chat command, an interactive single-session
// REPL against the full moderation pipeline.
func NewChatCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the tutor in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			resp, store, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			state := session.NewState()
			state.StudentName = name

			fmt.Println("Type a message and press enter. Ctrl-D or \"quit\" to exit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					return nil
				}

				result := resp.Respond(cmd.Context(), state, line)
				state.AppendMessage(session.RoleUser, line)
				state.AppendMessage(session.RoleAssistant, result.Content)

				fmt.Printf("\n[%s]\n%s\n\n", result.Badge, result.Content)
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name used in the tutor's replies")
	return cmd
}
