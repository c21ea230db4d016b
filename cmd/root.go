// =============================================================================
// Price Update Preparation Tool - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the shared wiring
// used by the subcommands.
//
// COBRA CLI STRUCTURE:
//   rootCmd (priceprep)
//   ├── serveCmd    (priceprep serve)
//   ├── processCmd  (priceprep process)
//   ├── validateCmd (priceprep validate)
//   └── versionCmd  (priceprep version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/cache"
	"github.com/priceops/priceprep/internal/config"
	"github.com/priceops/priceprep/internal/refsheet"
	"github.com/priceops/priceprep/internal/template"
	"github.com/priceops/priceprep/pkg/logger"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug-level logging when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "priceprep",
	Short: "Price Update Preparation Tool - Prepare bulk marketplace price updates",
	Long: `Price Update Preparation Tool joins pasted (SKU, New Price) pairs against
the marketplace status sheet, validates them, and fills the marketplace
upload template ready for bulk upload.

Example Usage:
  priceprep serve                         # Start the browser editing server
  priceprep process --input prices.csv    # Fill a workbook from a CSV of pairs
  priceprep validate                      # Check configuration, template and sheet link
  priceprep version                       # Display the application version`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// loadConfig reads the configuration file honoring the --verbose flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// buildLogger creates the application logger from configuration.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Env, cfg.LogLevel)
}

// buildResolver assembles the sheet client with the configured cache backend.
func buildResolver(cfg *config.Config, log *zap.Logger) *refsheet.Resolver {
	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = cache.NewRedis(client)
	default:
		store = cache.NewMemory()
	}

	client := refsheet.NewClient(
		refsheet.WithTimeout(cfg.FetchTimeout()),
		refsheet.WithCache(store, cfg.CacheTTL()),
		refsheet.WithLogger(log),
	)
	return refsheet.NewResolver(client)
}

// buildWriter creates the template writer for the configured workbook.
func buildWriter(cfg *config.Config, log *zap.Logger) *template.Writer {
	return template.NewWriter(cfg.TemplatePath, log)
}
