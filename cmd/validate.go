// =============================================================================
// Price Update Preparation Tool - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the deployment
// without processing anything: configuration loads, the upload template is
// present, and the status sheet link resolves to a fetchable CSV with the
// required columns.
//
// COMMAND USAGE:
//   priceprep validate
//   priceprep validate --skip-fetch
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// skipFetch disables the network check of the sheet link.
var skipFetch bool

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration, template and sheet link",
	Long: `Load the configuration, verify the upload template exists, and fetch the
status sheet once to confirm the link works and the sheet carries the
required columns. Use --skip-fetch to stay offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("Configuration:  OK (%s)\n", cfgFile)

		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := buildWriter(cfg, log).Check(); err != nil {
			return fmt.Errorf("template check failed: %w", err)
		}
		fmt.Printf("Template:       OK (%s)\n", cfg.TemplatePath)

		if skipFetch {
			fmt.Println("Sheet link:     skipped")
			return nil
		}

		resolver := buildResolver(cfg, log)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
		defer cancel()

		ref, err := resolver.Fetch(ctx, cfg.SheetLink)
		if err != nil {
			return fmt.Errorf("sheet check failed: %w", err)
		}
		fmt.Printf("Sheet link:     OK (%d reference SKUs)\n", ref.Len())
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Skip the network check of the sheet link")
	rootCmd.AddCommand(validateCmd)
}
