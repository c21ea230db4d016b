// =============================================================================
// Price Update Preparation Tool - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing application
// configuration. Settings come from a YAML file and can be overridden
// through environment variables, which makes container deployments easy.
//
// PRECEDENCE (lowest to highest):
//   1. Built-in defaults
//   2. config.yaml
//   3. Environment variables (a .env file is loaded if present)
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/priceops/priceprep/internal/rowtable"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// REFERENCE SHEET SETTINGS
	// =========================================================================

	// SheetLink is the Google Sheets link for the marketplace status sheet.
	// Any link containing the document ID works; the CSV export URL is
	// derived from it.
	SheetLink string `yaml:"sheet_link"`

	// FetchTimeoutSeconds is the HTTP timeout for downloading the sheet CSV.
	// Default: 15
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// =========================================================================
	// CACHE SETTINGS
	// =========================================================================

	// CacheBackend selects where fetched CSV bodies are cached.
	// Valid values: "memory", "redis"
	// Default: "memory"
	CacheBackend string `yaml:"cache_backend"`

	// CacheTTLMinutes is how long a fetched sheet stays cached.
	// Default: 30
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`

	// RedisAddr is the redis host:port, used when cache_backend is "redis".
	// Default: "localhost:6379"
	RedisAddr string `yaml:"redis_addr"`

	// =========================================================================
	// TEMPLATE AND OUTPUT SETTINGS
	// =========================================================================

	// TemplatePath is the path to the marketplace upload template workbook.
	// Default: "./templates/price_update_template.xlsx"
	TemplatePath string `yaml:"template_path"`

	// OutputDir is the directory where filled workbooks are written by the
	// CLI. The HTTP server streams workbooks instead of writing them here.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// VALIDATION SETTINGS
	// =========================================================================

	// UnpublishedPolicy controls how rows whose marketplace status is
	// unpublished are handled.
	// Valid values: "warn" (require explicit confirmation), "ignore"
	// Default: "warn"
	UnpublishedPolicy string `yaml:"unpublished_policy"`

	// =========================================================================
	// SERVER SETTINGS
	// =========================================================================

	// ListenAddr is the address the HTTP server binds to.
	// Default: ":8080"
	ListenAddr string `yaml:"listen_addr"`

	// DefaultRowCount is how many blank rows a fresh session starts with.
	// Must stay within the table bounds [1, 1000].
	// Default: 20
	DefaultRowCount int `yaml:"default_row_count"`

	// SessionTTLMinutes is how long an idle editing session is kept before
	// it is evicted.
	// Default: 60
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// Env selects the logger profile: "production" or "development".
	// Default: "development"
	Env string `yaml:"env"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// FetchTimeout returns the sheet fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns the sheet cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// SessionTTL returns the idle session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration file at configPath, applies defaults and
// environment overrides, and validates the result. A missing file is not an
// error; defaults and environment variables still apply.
func Load(configPath string) (*Config, error) {
	// A .env file next to the binary is convenient in development.
	_ = godotenv.Load()

	var config Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides replaces settings with environment values where present.
func applyEnvOverrides(config *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&config.SheetLink, "PRICEPREP_SHEET_LINK")
	setInt(&config.FetchTimeoutSeconds, "PRICEPREP_FETCH_TIMEOUT_SECONDS")
	setString(&config.CacheBackend, "PRICEPREP_CACHE_BACKEND")
	setInt(&config.CacheTTLMinutes, "PRICEPREP_CACHE_TTL_MINUTES")
	setString(&config.RedisAddr, "PRICEPREP_REDIS_ADDR")
	setString(&config.TemplatePath, "PRICEPREP_TEMPLATE_PATH")
	setString(&config.OutputDir, "PRICEPREP_OUTPUT_DIR")
	setString(&config.UnpublishedPolicy, "PRICEPREP_UNPUBLISHED_POLICY")
	setString(&config.ListenAddr, "PRICEPREP_LISTEN_ADDR")
	setInt(&config.DefaultRowCount, "PRICEPREP_DEFAULT_ROW_COUNT")
	setInt(&config.SessionTTLMinutes, "PRICEPREP_SESSION_TTL_MINUTES")
	setString(&config.Env, "PRICEPREP_ENV")
	setString(&config.LogLevel, "PRICEPREP_LOG_LEVEL")
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.FetchTimeoutSeconds == 0 {
		config.FetchTimeoutSeconds = 15
	}
	if config.CacheBackend == "" {
		config.CacheBackend = "memory"
	}
	if config.CacheTTLMinutes == 0 {
		config.CacheTTLMinutes = 30
	}
	if config.RedisAddr == "" {
		config.RedisAddr = "localhost:6379"
	}
	if config.TemplatePath == "" {
		config.TemplatePath = "./templates/price_update_template.xlsx"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.UnpublishedPolicy == "" {
		config.UnpublishedPolicy = "warn"
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.DefaultRowCount == 0 {
		config.DefaultRowCount = 20
	}
	if config.SessionTTLMinutes == 0 {
		config.SessionTTLMinutes = 60
	}
	if config.Env == "" {
		config.Env = "development"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validate rejects values outside the supported sets.
func validate(config *Config) error {
	switch config.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache_backend %q (want \"memory\" or \"redis\")", config.CacheBackend)
	}

	switch config.UnpublishedPolicy {
	case "warn", "ignore":
	default:
		return fmt.Errorf("unknown unpublished_policy %q (want \"warn\" or \"ignore\")", config.UnpublishedPolicy)
	}

	if config.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must not be negative")
	}
	if config.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must not be negative")
	}
	if config.SessionTTLMinutes < 0 {
		return fmt.Errorf("session_ttl_minutes must not be negative")
	}
	if config.DefaultRowCount < rowtable.MinRows || config.DefaultRowCount > rowtable.MaxRows {
		return fmt.Errorf("default_row_count %d out of range [%d, %d]",
			config.DefaultRowCount, rowtable.MinRows, rowtable.MaxRows)
	}

	return nil
}
