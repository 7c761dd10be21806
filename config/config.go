package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hungie/paths"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when nothing else names a backend
const DefaultAPIBaseURL = "https://hungie-backend-production.up.railway.app"

// Environment variables that override file configuration
const (
	EnvAPIURL   = "HUNGIE_API_URL"
	EnvLogLevel = "HUNGIE_LOG_LEVEL"
)

// Config represents the hungie configuration
type Config struct {
	APIBaseURL            string `json:"api_base_url"`
	ContextWindow         int    `json:"context_window"`          // turns sent as context with each message
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"` // 0 leaves timeouts to the transport
	LogLevel              string `json:"log_level"`
	LogFile               string `json:"log_file"` // empty means ~/.hungie/hungie.log
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:    DefaultAPIBaseURL,
		ContextWindow: 4,
		LogLevel:      "info",
	}
}

// LoadConfig resolves configuration once: defaults, then the global file,
// then the local file in workDir, then the environment (including a .env
// file in workDir).
func LoadConfig(workDir string) (*Config, error) {
	cfg := DefaultConfig()

	// No home directory simply means no global config
	if globalPath, err := paths.GetGlobalConfigPath(); err == nil {
		globalCfg, err := loadConfigFromFile(globalPath)
		if err == nil {
			mergeCfg(cfg, globalCfg)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	localCfg, err := loadConfigFromFile(paths.LocalConfigPath(workDir))
	if err == nil {
		mergeCfg(cfg, localCfg)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	// .env never overrides variables already set in the process
	if err := godotenv.Load(filepath.Join(workDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if url := strings.TrimSpace(os.Getenv(EnvAPIURL)); url != "" {
		cfg.APIBaseURL = url
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// RequestTimeout returns the configured transport timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "api_base_url":
		return c.APIBaseURL, nil
	case "context_window":
		return c.ContextWindow, nil
	case "request_timeout_seconds":
		return c.RequestTimeoutSeconds, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// CLI input is always string
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "api_base_url":
		if !strings.HasPrefix(str, "http://") && !strings.HasPrefix(str, "https://") {
			return fmt.Errorf("expected http(s) URL for api_base_url, got: %s", str)
		}
		c.APIBaseURL = str
		return nil
	case "context_window":
		val, err := strconv.Atoi(str)
		if err != nil || val <= 0 {
			return fmt.Errorf("expected positive number for context_window, got: %s", str)
		}
		c.ContextWindow = val
		return nil
	case "request_timeout_seconds":
		val, err := strconv.Atoi(str)
		if err != nil || val < 0 {
			return fmt.Errorf("expected non-negative number for request_timeout_seconds, got: %s", str)
		}
		c.RequestTimeoutSeconds = val
		return nil
	case "log_level":
		switch str {
		case "trace", "debug", "info", "warn", "error", "disabled":
			c.LogLevel = str
			return nil
		default:
			return fmt.Errorf("unknown log level: %s", str)
		}
	case "log_file":
		c.LogFile = str
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &cfg, nil
}

// LoadLocalConfig reads only <workDir>/.hungie/config.json, so that saving
// it back does not bake in global or environment values. A missing file
// gives an empty config.
func LoadLocalConfig(workDir string) (*Config, error) {
	cfg, err := loadConfigFromFile(paths.LocalConfigPath(workDir))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// SaveLocalConfig saves configuration to <workDir>/.hungie/config.json
func SaveLocalConfig(workDir string, cfg *Config) error {
	if err := paths.EnsureDir(paths.LocalDir(workDir)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(paths.LocalConfigPath(workDir), data, 0644)
}

// mergeCfg merges non-zero source values into destination config
func mergeCfg(dst, src *Config) {
	if src.APIBaseURL != "" {
		dst.APIBaseURL = src.APIBaseURL
	}
	if src.ContextWindow > 0 {
		dst.ContextWindow = src.ContextWindow
	}
	if src.RequestTimeoutSeconds > 0 {
		dst.RequestTimeoutSeconds = src.RequestTimeoutSeconds
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}
