// Package cli implements the command-line interface. Commands are thin
// adapters over the driving ports; all business logic lives in the core
// services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driving"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected at startup.
var (
	chatService      driving.ChatService
	summaryService   driving.SummaryService
	flashcardService driving.FlashcardService
)

var rootCmd = &cobra.Command{
	Use:   "intellidoc",
	Short: "Chat with your documents from the terminal",
	Long: `IntelliDoc turns plain-text documents into question-answering
sessions. Upload a document, then ask questions, summarize it or
generate flashcards. Sessions live in memory only.`,
	SilenceUsage: true,
}

// SetServices wires the core services into the command tree.
func SetServices(chat driving.ChatService, summary driving.SummaryService, flashcards driving.FlashcardService) {
	chatService = chat
	summaryService = summary
	flashcardService = flashcards
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
