package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List artists saved to the local library",
	RunE:  runSaved,
}

func init() {
	rootCmd.AddCommand(savedCmd)
}

func runSaved(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	artists, err := lib.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved artists: %w", err)
	}

	if len(artists) == 0 {
		fmt.Println("No saved artists. Use 'ennest save' to add one.")
		return nil
	}

	rows := make([][]string, len(artists))
	for i, artist := range artists {
		rows[i] = []string{
			artist.ID,
			artist.Name,
			fmt.Sprintf("%.4f", artist.Hotttnesss),
			fmt.Sprintf("%.4f", artist.Familiarity),
			artist.SavedAt.Format("2006-01-02"),
			artist.Note,
		}
	}

	fmt.Print(renderTable([]string{"ID", "NAME", "HOTTT", "FAMIL", "SAVED", "NOTE"}, rows))
	return nil
}
