package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sessionsJSON bool
	historyJSON  bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List active sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show the conversation history of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear [session-id]",
	Short: "Clear a session's conversation history, keeping the document",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func init() {
	sessionsCmd.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}

func runSessions(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	summaries := chatService.Sessions(context.Background())

	if sessionsJSON {
		out, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No active sessions.")
		return nil
	}

	cmd.Printf("Active sessions: %d\n\n", len(summaries))
	for _, s := range summaries {
		cmd.Printf("  %s\n", s.SessionID)
		cmd.Printf("      Document: %s (%d chars)\n", s.DocumentName, s.DocumentLength)
		cmd.Printf("      Questions: %d, created %s\n", s.TurnCount, s.CreatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	conv, err := chatService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if historyJSON {
		out, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Document: %s\n", conv.DocumentPreview)
	cmd.Printf("Questions asked: %d\n\n", conv.TurnCount)
	for i, turn := range conv.Turns {
		cmd.Printf("  [%d] Q: %s\n", i+1, turn.Question)
		cmd.Printf("      A: %s\n\n", turn.Answer)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if !chatService.DeleteSession(context.Background(), args[0]) {
		return fmt.Errorf("session %s not found", args[0])
	}
	cmd.Printf("Session %s deleted.\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.ClearHistory(context.Background(), args[0]); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Printf("History cleared for session %s.\n", args[0])
	return nil
}
