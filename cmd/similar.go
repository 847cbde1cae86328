package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/spf13/cobra"
)

var (
	similarResults        int
	similarBuckets        []string
	similarLimit          bool
	similarMaxFamiliarity float64
	similarMinFamiliarity float64
	similarMaxHotttnesss  float64
	similarMinHotttnesss  float64
)

var similarCmd = &cobra.Command{
	Use:   "similar <artist>...",
	Short: "Find artists similar to one or more seed artists",
	Long: `Find artists similar to the given seeds.

Seeds may be artist names or Echo Nest IDs; both kinds can be mixed in
one invocation. With multiple seeds the results blend all of them.

Examples:
  ennest similar Radiohead
  ennest similar ARH6W4X1187B99274F
  ennest similar Radiohead "The National" --results 25`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimilar,
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().IntVarP(&similarResults, "results", "n", 0, "Number of results (default from config)")
	similarCmd.Flags().StringSliceVar(&similarBuckets, "bucket", nil, "Buckets to request (repeatable)")
	similarCmd.Flags().BoolVar(&similarLimit, "limit", false, "Limit results to the id spaces named in buckets")
	similarCmd.Flags().Float64Var(&similarMaxFamiliarity, "max-familiarity", 0, "Maximum familiarity")
	similarCmd.Flags().Float64Var(&similarMinFamiliarity, "min-familiarity", 0, "Minimum familiarity")
	similarCmd.Flags().Float64Var(&similarMaxHotttnesss, "max-hotttnesss", 0, "Maximum hotttnesss")
	similarCmd.Flags().Float64Var(&similarMinHotttnesss, "min-hotttnesss", 0, "Minimum hotttnesss")
}

// splitSeeds routes each argument to the ids or names list depending on
// whether it looks like an Echo Nest identifier.
func splitSeeds(args []string) (ids, names []string) {
	for _, arg := range args {
		if strings.Contains(arg, ":") || (len(arg) == 18 && strings.HasPrefix(arg, "AR")) {
			ids = append(ids, arg)
		} else {
			names = append(names, arg)
		}
	}
	return ids, names
}

func runSimilar(cmd *cobra.Command, args []string) error {
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

	results := similarResults
	if results == 0 {
		results = cfg.Results
	}
	buckets := similarBuckets
	if len(buckets) == 0 {
		buckets = cfg.Buckets
	}

	ids, names := splitSeeds(args)

	artists, err := client.Artists().Similar(ctx, echonest.SimilarQuery{
		IDs:            ids,
		Names:          names,
		Results:        results,
		Buckets:        buckets,
		Limit:          similarLimit,
		MaxFamiliarity: similarMaxFamiliarity,
		MinFamiliarity: similarMinFamiliarity,
		MaxHotttnesss:  similarMaxHotttnesss,
		MinHotttnesss:  similarMinHotttnesss,
	})
	if err != nil {
		return fmt.Errorf("similar failed: %w", err)
	}

	if len(artists) == 0 {
		fmt.Println("No artists found.")
		return nil
	}

	fmt.Print(renderTable([]string{"ID", "NAME"}, artistRows(artists)))
	return nil
}
