package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/spf13/cobra"
)

var (
	showDocs    string
	showIDSpace string
	showResults int
	showStart   int
	showLicense string
)

var showCmd = &cobra.Command{
	Use:   "show <artist>",
	Short: "Show details for a single artist",
	Long: `Show details for a single artist.

The argument may be an artist name, an Echo Nest ID, or a namespaced
foreign ID like musicbrainz:artist:<uuid>. By default the command
prints the artist's hotttnesss, familiarity, and urls.

With --docs, one of the artist's document listings is printed instead:
audio, biographies, blogs, images, news, reviews, or video.

Examples:
  ennest show Radiohead
  ennest show ARH6W4X1187B99274F --idspace musicbrainz
  ennest show Radiohead --docs news --results 5`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showDocs, "docs", "", "Document listing to print (audio, biographies, blogs, images, news, reviews, video)")
	showCmd.Flags().StringVar(&showIDSpace, "idspace", "", "Also resolve the artist's id in this id space")
	showCmd.Flags().IntVarP(&showResults, "results", "n", 0, "Number of documents (service default when zero)")
	showCmd.Flags().IntVar(&showStart, "start", 0, "Offset into the document listing")
	showCmd.Flags().StringVar(&showLicense, "license", "", "License filter for listings that support it")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if showDocs != "" {
		return showDocuments(ctx, artist)
	}

	return showProfile(ctx, artist)
}

func showProfile(ctx context.Context, artist *echonest.Artist) error {
	hotttnesss, err := artist.Hotttnesss(ctx, echonest.FetchOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch hotttnesss: %w", err)
	}
	familiarity, err := artist.Familiarity(ctx, echonest.FetchOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch familiarity: %w", err)
	}

	fmt.Printf("Name:        %s\n", artist.Name)
	fmt.Printf("ID:          %s\n", artist.ID)
	fmt.Printf("Hotttnesss:  %.4f\n", hotttnesss)
	fmt.Printf("Familiarity: %.4f\n", familiarity)

	if showIDSpace != "" {
		foreignID, err := artist.ForeignID(ctx, showIDSpace, echonest.FetchOptions{})
		if err != nil {
			return fmt.Errorf("failed to resolve %s id: %w", showIDSpace, err)
		}
		if foreignID == "" {
			fmt.Printf("%s: (none)\n", showIDSpace)
		} else {
			fmt.Printf("%s: %s\n", showIDSpace, foreignID)
		}
	}

	urls, err := artist.URLs(ctx, echonest.FetchOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch urls: %w", err)
	}
	fields := urls.Fields()
	sort.Strings(fields)
	fmt.Println("\nURLs:")
	for _, field := range fields {
		value, err := urls.Get(field)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s %v\n", field, value)
	}

	return nil
}

func showDocuments(ctx context.Context, artist *echonest.Artist) error {
	opts := echonest.DocumentOptions{
		Results: showResults,
		Start:   showStart,
		License: showLicense,
	}

	var (
		docs []echonest.Document
		err  error
	)
	switch showDocs {
	case "audio":
		docs, err = artist.Audio(ctx, opts)
	case "biographies":
		docs, err = artist.Biographies(ctx, opts)
	case "blogs":
		docs, err = artist.Blogs(ctx, opts)
	case "images":
		docs, err = artist.Images(ctx, opts)
	case "news":
		docs, err = artist.News(ctx, opts)
	case "reviews":
		docs, err = artist.Reviews(ctx, opts)
	case "video":
		docs, err = artist.Video(ctx, opts)
	default:
		return fmt.Errorf("unknown document listing %q", showDocs)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", showDocs, err)
	}

	if len(docs) == 0 {
		fmt.Printf("No %s found for %s.\n", showDocs, artist)
		return nil
	}

	for i, doc := range docs {
		fmt.Printf("%d. %s\n", i+1, documentTitle(doc))
		if u, err := doc.GetString("url"); err == nil {
			fmt.Printf("   %s\n", u)
		}
	}
	return nil
}

// documentTitle picks a human readable label for a document. Listings
// disagree on which field carries it.
func documentTitle(doc echonest.Document) string {
	for _, field := range []string{"title", "name", "site"} {
		if s, err := doc.GetString(field); err == nil && s != "" {
			return s
		}
	}
	return "(untitled " + doc.Kind + ")"
}
