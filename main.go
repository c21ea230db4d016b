// =============================================================================
// Price Update Preparation Tool - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Price Update Preparation Tool. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   priceprep serve     - Start the browser editing server
//   priceprep process   - Fill an upload workbook from a CSV of price updates
//   priceprep validate  - Check configuration, template and sheet link
//   priceprep version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core business logic (not for external import)
//   - pkg/       : Shared utilities
//   - templates/ : The marketplace upload template workbook
//
// =============================================================================

package main

import (
	"github.com/priceops/priceprep/cmd"
)

func main() {
	cmd.Execute()
}
