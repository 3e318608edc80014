package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	uploadName string
	uploadJSON bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document and start a session",
	Long: `Reads a plain-text document, splits it into chunks, embeds them
and stores everything in a new in-memory session. The printed session
id is used by ask, history, delete and clear.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "display name for the document (defaults to the file name)")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	name := uploadName
	if name == "" {
		name = filepath.Base(args[0])
	}

	info, err := chatService.CreateSession(context.Background(), string(data), map[string]string{
		"document_name": name,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if uploadJSON {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Uploaded %q (%d chunks)\n", name, info.ChunkCount)
	cmd.Printf("Session: %s\n", info.SessionID)
	return nil
}
