package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

var (
	flashcardCount      int
	flashcardType       string
	flashcardLanguage   string
	flashcardDifficulty string
	flashcardJSON       bool
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [file]",
	Short: "Generate study flashcards from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlashcards,
}

func init() {
	flashcardsCmd.Flags().IntVar(&flashcardCount, "cards", 10, "number of cards to generate")
	flashcardsCmd.Flags().StringVar(&flashcardType, "type", "question_answer", "card style")
	flashcardsCmd.Flags().StringVar(&flashcardLanguage, "language", "english", "output language")
	flashcardsCmd.Flags().StringVar(&flashcardDifficulty, "difficulty", "", "difficulty level")
	flashcardsCmd.Flags().BoolVar(&flashcardJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(flashcardsCmd)
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	if flashcardService == nil {
		return errors.New("flashcard service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	cards, err := flashcardService.Generate(context.Background(), string(data), domain.FlashcardOptions{
		NumCards:   flashcardCount,
		CardType:   flashcardType,
		Language:   flashcardLanguage,
		Difficulty: flashcardDifficulty,
	})
	if err != nil {
		return fmt.Errorf("flashcards failed: %w", err)
	}

	if flashcardJSON {
		out, err := json.MarshalIndent(cards, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	for i, card := range cards {
		cmd.Printf("[%d] %s\n", i+1, card.Question)
		cmd.Printf("    %s\n", card.Answer)
		if card.Topic != "" {
			cmd.Printf("    Topic: %s\n", card.Topic)
		}
		if card.Hint != "" {
			cmd.Printf("    Hint: %s\n", card.Hint)
		}
		cmd.Println()
	}
	return nil
}
