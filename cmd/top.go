package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/spf13/cobra"
)

var (
	topResults int
	topStart   int
	topBuckets []string
	topLimit   bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the current top hottt artists",
	Long: `List the artists with the highest current hotttnesss.

Examples:
  ennest top
  ennest top --results 25
  ennest top --bucket hotttnesss`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVarP(&topResults, "results", "n", 0, "Number of results (default from config)")
	topCmd.Flags().IntVar(&topStart, "start", 0, "Offset into the ranking")
	topCmd.Flags().StringSliceVar(&topBuckets, "bucket", nil, "Buckets to request (repeatable)")
	topCmd.Flags().BoolVar(&topLimit, "limit", false, "Limit results to the id spaces named in buckets")
}

func runTop(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newEchoNestClient(cfg, newLogger())
	if err != nil {
		return err
	}

	results := topResults
	if results == 0 {
		results = cfg.Results
	}
	buckets := topBuckets
	if len(buckets) == 0 {
		buckets = cfg.Buckets
	}

	artists, err := client.Artists().TopHottt(ctx, echonest.TopOptions{
		Results: results,
		Start:   topStart,
		Buckets: buckets,
		Limit:   topLimit,
	})
	if err != nil {
		return fmt.Errorf("top hottt failed: %w", err)
	}

	if len(artists) == 0 {
		fmt.Println("No artists found.")
		return nil
	}

	fmt.Print(renderTable([]string{"ID", "NAME"}, artistRows(artists)))
	return nil
}
