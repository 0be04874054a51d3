package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultListingURL = "https://scriptblox.com/api/script/fetch"
	DefaultSearchURL  = "https://scriptblox.com/api/script/search"
	DefaultAssetBase  = "https://scriptblox.com"
	DefaultUserAgent  = "scripthub/dev (unknown-user)"
	databaseFileName  = "scripthub.db"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	ListingURL     string        `mapstructure:"SCRIPTHUB_LISTING_URL"`
	SearchURL      string        `mapstructure:"SCRIPTHUB_SEARCH_URL"`
	AssetBaseURL   string        `mapstructure:"SCRIPTHUB_ASSET_BASE"`
	UserAgent      string        `mapstructure:"USERAGENT"`
	DataDir        string        `mapstructure:"SCRIPTHUB_DATA_DIR"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"` // zero means no timeout
	DatabasePath   string        `mapstructure:"-"`               // Not from env, derived
}

var envKeys = []string{
	"SCRIPTHUB_LISTING_URL",
	"SCRIPTHUB_SEARCH_URL",
	"SCRIPTHUB_ASSET_BASE",
	"USERAGENT",
	"SCRIPTHUB_DATA_DIR",
	"REQUEST_TIMEOUT",
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)   // Path to look for the config file in
	v.SetConfigName(".env") // Name of config file (without extension)
	v.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := v.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			slog.Warn("Unable to bind env var", "key", key, "error", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in anything the environment left empty.
func processConfigDefaults(cfg *Config) {
	if cfg.ListingURL == "" {
		cfg.ListingURL = DefaultListingURL
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	if cfg.AssetBaseURL == "" {
		cfg.AssetBaseURL = DefaultAssetBase
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
	if cfg.RequestTimeout < 0 {
		slog.Warn("Negative REQUEST_TIMEOUT, disabling timeout", "value", cfg.RequestTimeout)
		cfg.RequestTimeout = 0
	}
	if cfg.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DataDir = filepath.Join(home, ".scripthub")
		} else {
			cfg.DataDir = "."
		}
	}
}

// validateAndEnsureDirectories creates the data directory and derives the database path.
func validateAndEnsureDirectories(cfg *Config) error {
	if cfg.DataDir == "" {
		slog.Error("SCRIPTHUB_DATA_DIR is not set")
		return fmt.Errorf("SCRIPTHUB_DATA_DIR is required")
	}

	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		slog.Info("Data directory does not exist, creating it", "path", cfg.DataDir)
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			slog.Error("Failed to create data directory", "path", cfg.DataDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check data directory", "path", cfg.DataDir, "error", err)
		return err
	}

	cfg.DatabasePath = filepath.Join(cfg.DataDir, databaseFileName)
	return nil
}
