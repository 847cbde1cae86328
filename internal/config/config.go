package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Default number of results for query commands
	Results int

	// Buckets requested by default on every query
	Buckets []string

	// Echo Nest API credentials and endpoint
	EchoNest EchoNestConfig
}

// EchoNestConfig holds Echo Nest specific configuration
type EchoNestConfig struct {
	APIKey  string
	BaseURL string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("results", 15)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	// (e.g. ENNEST_ECHONEST_API_KEY maps to echonest.api_key)
	v.SetEnvPrefix("ENNEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Results: v.GetInt("results"),
		Buckets: v.GetStringSlice("buckets"),
		EchoNest: EchoNestConfig{
			APIKey:  v.GetString("echonest.api_key"),
			BaseURL: v.GetString("echonest.base_url"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "ennest")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// GetDataDir returns the data directory path used for the artist
// library database. Creates the directory if it doesn't exist.
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "ennest")
	_ = os.MkdirAll(dataDir, 0755)

	return dataDir
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("results", c.Results)
	v.Set("buckets", c.Buckets)
	v.Set("echonest.api_key", c.EchoNest.APIKey)
	v.Set("echonest.base_url", c.EchoNest.BaseURL)

	// Write to file
	return v.WriteConfigAs(configFile)
}
