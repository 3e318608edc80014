package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askRemote bool
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [session-id] [question]",
	Short: "Ask a question about an uploaded document",
	Long: `Answers a question against a session. By default the answer is
selected locally from the most similar document chunks. With --remote
the configured generation model answers instead, falling back to the
local path if it fails.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askRemote, "remote", false, "answer with the generation model")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Ask(context.Background(), args[0], args[1], askRemote)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("Confidence: %.3f\n", answer.Confidence)
	if answer.ContextPreview != "" {
		cmd.Printf("Context: %s\n", answer.ContextPreview)
	}
	return nil
}
