// Package config provides application configuration management with support for environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Dataset DatasetConfig
	Store   StoreConfig
	Search  SearchConfig
	Site    SiteConfig
	Server  ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatasetConfig locates the canonical on-disk dataset.
type DatasetConfig struct {
	// Path is the dataset root, containing one directory per entity kind
	// (villagers/, items/), one JSON file per entity.
	Path string
}

// StoreConfig holds key-value store configuration.
type StoreConfig struct {
	// Path is the Badger database directory holding the enrichment cache
	// and the live-index pointer.
	Path string
}

// SearchConfig holds search index configuration.
type SearchConfig struct {
	// DataPath is the directory under which physical Bleve indexes live.
	// Each rebuild creates a fresh timestamped index directory here.
	DataPath string
}

// SiteConfig holds public site configuration used for URL construction.
type SiteConfig struct {
	// BaseURL is the public site root, without a trailing slash.
	BaseURL string
	// SitemapPath is where the sitemap job writes sitemap.xml.
	SitemapPath string
}

// ServerConfig holds the read-side search API configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load loads configuration with precedence:
// 1. Environment variables (highest priority).
// 2. .env file.
// 3. Default values.
//
// Flag handling lives in the CLI layer (cobra); this package only looks at
// the environment.
func Load() (*Config, error) {
	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(getEnv("LEAFDEX_ENV_FILE", ".env"))

	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("LEAFDEX_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Dataset: DatasetConfig{
			Path: getEnv("DATASET_PATH", "data/dataset"),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", "data/db"),
		},
		Search: SearchConfig{
			DataPath: getEnv("SEARCH_PATH", "data/search"),
		},
		Site: SiteConfig{
			BaseURL:     strings.TrimRight(getEnv("SITE_URL", "https://leafdex.app"), "/"),
			SitemapPath: getEnv("SITEMAP_PATH", "data/sitemap.xml"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDuration("SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	for _, p := range []*string{&cfg.Dataset.Path, &cfg.Store.Path, &cfg.Search.DataPath, &cfg.Site.SitemapPath} {
		expanded, err := expandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("LEAFDEX_ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Site.BaseURL == "" {
		return errors.New("SITE_URL cannot be empty")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getDuration parses a duration from the environment or returns a default.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
