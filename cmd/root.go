package cmd

import (
	"fmt"
	"os"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootVerbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ennest",
	Short: "Explore the Echo Nest artist catalog",
	Long: `ennest is a command line explorer for the Echo Nest artist catalog.

It wraps the Echo Nest API v4 artist methods: search the catalog, list
the current top hottt artists, walk similarity relationships, and pull
per-artist data like hotttnesss, familiarity, biographies, news, and
reviews. Artists you care about can be saved to a local library.

An Echo Nest API key is required. Run 'ennest auth' to configure one.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the application logger honoring the --verbose flag
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if rootVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// debugLogger bridges zerolog into the SDK's optional Logger interface
type debugLogger struct {
	log zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

// newEchoNestClient builds an SDK client from the loaded configuration
func newEchoNestClient(cfg *config.Config, logger zerolog.Logger) (*echonest.Client, error) {
	if cfg.EchoNest.APIKey == "" {
		return nil, fmt.Errorf("Echo Nest API key not configured. Run 'ennest auth' first")
	}

	client, err := echonest.NewClient(echonest.Config{
		APIKey:  cfg.EchoNest.APIKey,
		BaseURL: cfg.EchoNest.BaseURL,
		Logger:  debugLogger{log: logger.With().Str("component", "echonest").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Echo Nest client: %w", err)
	}

	return client, nil
}
