package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mgrier/ennest/internal/config"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure an Echo Nest API key",
	Long: `Configure the Echo Nest API key used by every other command.

This command will:
1. Prompt you for your Echo Nest API key
2. Verify the key with a small request against the API
3. Save the key to your config file

You can get an API key from: http://developer.echonest.com/account/register`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	reader := bufio.NewReader(os.Stdin)

	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Echo Nest Authentication")
	fmt.Println("========================")
	fmt.Println()
	fmt.Println("You can get an API key from: http://developer.echonest.com/account/register")
	fmt.Println()

	// Check if we already have a key
	if cfg.EchoNest.APIKey != "" {
		fmt.Printf("Found existing API key: %s\n", cfg.EchoNest.APIKey)
		fmt.Print("\nUse existing key? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.EchoNest.APIKey = ""
		}
	}

	// Prompt for the key if not set
	if cfg.EchoNest.APIKey == "" {
		fmt.Print("Enter your Echo Nest API Key: ")
		apiKey, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.EchoNest.APIKey = strings.TrimSpace(apiKey)
	}

	if cfg.EchoNest.APIKey == "" {
		return fmt.Errorf("an API key is required")
	}

	// Verify the key against the API before saving it
	client, err := echonest.NewClient(echonest.Config{
		APIKey:  cfg.EchoNest.APIKey,
		BaseURL: cfg.EchoNest.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create Echo Nest client: %w", err)
	}

	fmt.Println("\nVerifying API key...")
	if _, err := client.Artists().TopHottt(ctx, echonest.TopOptions{Results: 1}); err != nil {
		return fmt.Errorf("API key verification failed: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath := config.GetConfigDir()
	fmt.Printf("\n✓ API key verified!\n")
	fmt.Printf("✓ Key saved to %s/config.yaml\n", configPath)
	fmt.Println("\nYou can now use 'ennest search' to explore the catalog.")

	return nil
}
