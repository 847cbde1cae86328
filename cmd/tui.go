package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the artist catalog interactively",
	Long: `Browse the artist catalog in a terminal user interface.

The TUI includes:
- A search box for querying artists by name
- A results list that can pivot to similar artists or the top hottt chart
- A detail panel showing hotttnesss, familiarity, and urls

Key bindings:
  /      focus the search box
  enter  select an artist
  s      show artists similar to the selection
  t      show the top hottt artists
  q      quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newEchoNestClient(cfg, newLogger())
	if err != nil {
		return err
	}

	tuiCfg := tui.DefaultConfig()
	if cfg.Results > 0 {
		tuiCfg.Results = cfg.Results
	}
	tuiCfg.Timeout = 30 * time.Second

	app := tui.NewWithConfig(client, tuiCfg)
	defer app.Stop()

	return app.Run(context.Background())
}
