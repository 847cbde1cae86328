package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/internal/library"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/spf13/cobra"
)

var saveNote string

var saveCmd = &cobra.Command{
	Use:   "save <artist>",
	Short: "Save an artist to the local library",
	Long: `Save an artist to the local library.

The artist's current hotttnesss and familiarity are fetched and stored
alongside the entry. Saving an already saved artist refreshes it.

Examples:
  ennest save Radiohead
  ennest save ARH6W4X1187B99274F --note "seen live 2009"`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().StringVar(&saveNote, "note", "", "Free-form note stored with the artist")
}

// openLibrary opens the artist library database in the data directory.
func openLibrary() (*library.Library, error) {
	path := filepath.Join(config.GetDataDir(), "library.db")
	lib, err := library.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newEchoNestClient(cfg, newLogger())
	if err != nil {
		return err
	}

	artist := client.Artists().Get(args[0])

	// Resolves the artist's id and name as a side effect when the
	// argument was a plain name.
	hotttnesss, err := artist.Hotttnesss(ctx, echonest.FetchOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch hotttnesss: %w", err)
	}
	familiarity, err := artist.Familiarity(ctx, echonest.FetchOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch familiarity: %w", err)
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	saved := library.SavedArtist{
		ID:          artist.ID,
		Name:        artist.Name,
		Hotttnesss:  hotttnesss,
		Familiarity: familiarity,
		Note:        saveNote,
	}
	if err := lib.Save(ctx, saved); err != nil {
		return fmt.Errorf("failed to save artist: %w", err)
	}

	fmt.Printf("Saved %s (%s)\n", artist.Name, artist.ID)
	return nil
}
