package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var unsaveCmd = &cobra.Command{
	Use:   "unsave <artist-id>",
	Short: "Remove an artist from the local library",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnsave,
}

func init() {
	rootCmd.AddCommand(unsaveCmd)
}

func runUnsave(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	if err := lib.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove artist: %w", err)
	}

	fmt.Printf("Removed %s\n", args[0])
	return nil
}
