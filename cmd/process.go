// =============================================================================
// Price Update Preparation Tool - Process Command
// =============================================================================
//
// This file defines the 'process' command: the one-shot CLI path through the
// pipeline. It reads (SKU, New Price) pairs from a CSV file, resolves them
// against the status sheet, validates, and writes the filled upload workbook
// to the output directory.
//
// COMMAND USAGE:
//   priceprep process --input prices.csv
//   priceprep process --input prices.csv --output "May Price Update" --force
//
// INPUT FORMAT:
//   A CSV file with the header row "SKU,New Price". Extra columns are
//   ignored.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/csvtab"
	"github.com/priceops/priceprep/internal/rowtable"
	"github.com/priceops/priceprep/internal/validation"
	"github.com/priceops/priceprep/pkg/utils"
)

// Input column names for the process command.
const (
	inputColSKU   = "SKU"
	inputColPrice = "New Price"
)

var (
	processInput     string
	processOutput    string
	processSheetLink string
	processForce     bool
	processOverwrite bool
)

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Fill an upload workbook from a CSV of price updates",
	Long: `Read (SKU, New Price) pairs from a CSV file, resolve marketplace status
from the configured sheet, validate the rows, and write the filled upload
workbook to the output directory.

Unpublished SKUs stop the run unless --force is given (or the unpublished
policy is set to "ignore").`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "CSV file of SKU,New Price pairs (required)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output workbook name (default is date-stamped)")
	processCmd.Flags().StringVar(&processSheetLink, "sheet-link", "", "Status sheet link (overrides configuration)")
	processCmd.Flags().BoolVar(&processForce, "force", false, "Proceed despite unpublished SKUs")
	processCmd.Flags().BoolVar(&processOverwrite, "overwrite", false, "Overwrite an existing output file of the same name")
	processCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Fail before any network work if the template is absent.
	writer := buildWriter(cfg, log)
	if err := writer.Check(); err != nil {
		return err
	}

	table, err := loadInputTable(processInput)
	if err != nil {
		return err
	}
	log.Info("input loaded",
		zap.String("file", processInput),
		zap.Int("rows", table.Len()),
	)

	link := processSheetLink
	if link == "" {
		link = cfg.SheetLink
	}

	resolver := buildResolver(cfg, log)
	if err := resolver.Resolve(context.Background(), link, table); err != nil {
		return err
	}

	policy := validation.ParsePolicy(cfg.UnpublishedPolicy)
	result := validation.Validate(table.Rows(), policy)

	if !result.OK() {
		for _, msg := range result.HardErrors {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		return fmt.Errorf("validation failed with %d error(s)", len(result.HardErrors))
	}
	if result.NeedsConfirmation() && !processForce {
		fmt.Fprintf(os.Stderr, "Unpublished SKUs: %s\n", strings.Join(result.UnpublishedSKUs, ", "))
		return fmt.Errorf("%d unpublished SKU(s); rerun with --force to include them", len(result.UnpublishedSKUs))
	}

	workbook, err := writer.Fill(result.WritableRows)
	if err != nil {
		return err
	}

	om := utils.NewOutputManager(cfg.OutputDir)
	om.OverwriteExisting = processOverwrite
	path, err := om.Save(utils.ResolveFileName(processOutput), workbook)
	if err != nil {
		return err
	}

	log.Info("workbook written",
		zap.String("path", path),
		zap.Int("rows", len(result.WritableRows)),
	)
	fmt.Printf("Wrote %d row(s) to %s\n", len(result.WritableRows), path)
	return nil
}

// loadInputTable reads the pairs CSV into a fresh row table.
func loadInputTable(path string) (*rowtable.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	data, err := csvtab.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}
	if missing := data.MissingHeaders(inputColSKU, inputColPrice); len(missing) > 0 {
		return nil, fmt.Errorf("input file is missing required columns: %s", strings.Join(missing, ", "))
	}
	if len(data.Rows) > rowtable.MaxRows {
		return nil, fmt.Errorf("too many input rows: %d (max %d)", len(data.Rows), rowtable.MaxRows)
	}

	table := rowtable.New(len(data.Rows))
	for i, row := range data.Rows {
		if err := table.SetInput(i, row[inputColSKU], row[inputColPrice]); err != nil {
			return nil, err
		}
	}
	return table, nil
}
