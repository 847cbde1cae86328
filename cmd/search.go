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
	searchDescription    string
	searchResults        int
	searchBuckets        []string
	searchLimit          bool
	searchExact          bool
	searchSoundsLike     bool
	searchSort           string
	searchMaxFamiliarity float64
	searchMinFamiliarity float64
	searchMaxHotttnesss  float64
	searchMinHotttnesss  float64
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search the Echo Nest artist catalog",
	Long: `Search for artists by name, description, or constraint.

Examples:
  ennest search "the national"
  ennest search --description shoegaze --results 25
  ennest search "the national" --exact
  ennest search "redyohead" --sounds-like`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchDescription, "description", "d", "", "Describe the artist instead of naming it")
	searchCmd.Flags().IntVarP(&searchResults, "results", "n", 0, "Number of results (default from config)")
	searchCmd.Flags().StringSliceVar(&searchBuckets, "bucket", nil, "Buckets to request (repeatable)")
	searchCmd.Flags().BoolVar(&searchLimit, "limit", false, "Limit results to the id spaces named in buckets")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Require exact name matches")
	searchCmd.Flags().BoolVar(&searchSoundsLike, "sounds-like", false, "Match similar sounding names")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order (e.g. hotttnesss-desc)")
	searchCmd.Flags().Float64Var(&searchMaxFamiliarity, "max-familiarity", 0, "Maximum familiarity")
	searchCmd.Flags().Float64Var(&searchMinFamiliarity, "min-familiarity", 0, "Minimum familiarity")
	searchCmd.Flags().Float64Var(&searchMaxHotttnesss, "max-hotttnesss", 0, "Maximum hotttnesss")
	searchCmd.Flags().Float64Var(&searchMinHotttnesss, "min-hotttnesss", 0, "Minimum hotttnesss")
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && searchDescription == "" {
		return fmt.Errorf("either a name or --description is required")
	}

	results := searchResults
	if results == 0 {
		results = cfg.Results
	}
	buckets := searchBuckets
	if len(buckets) == 0 {
		buckets = cfg.Buckets
	}

	artists, err := client.Artists().Search(ctx, echonest.SearchOptions{
		Name:           name,
		Description:    searchDescription,
		Results:        results,
		Buckets:        buckets,
		Limit:          searchLimit,
		Exact:          searchExact,
		SoundsLike:     searchSoundsLike,
		Sort:           searchSort,
		MaxFamiliarity: searchMaxFamiliarity,
		MinFamiliarity: searchMinFamiliarity,
		MaxHotttnesss:  searchMaxHotttnesss,
		MinHotttnesss:  searchMinHotttnesss,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(artists) == 0 {
		fmt.Println("No artists found.")
		return nil
	}

	fmt.Print(renderTable([]string{"ID", "NAME"}, artistRows(artists)))
	return nil
}
