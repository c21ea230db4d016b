// =============================================================================
// Price Update Preparation Tool - Output Manager
// =============================================================================
//
// This module manages the output directory for filled upload workbooks:
//   - Directory creation
//   - Output file naming (user-provided or date-stamped default)
//   - Collision-safe saving
//
// =============================================================================

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/priceops/priceprep/internal/normalize"
)

// =============================================================================
// OUTPUT MANAGER
// =============================================================================

// OutputManager handles saving filled workbooks to the output directory.
type OutputManager struct {
	// OutputDir is the directory where workbooks are written.
	OutputDir string

	// OverwriteExisting replaces an existing file of the same name instead
	// of generating a unique one.
	OverwriteExisting bool
}

// NewOutputManager creates an OutputManager for the given directory.
func NewOutputManager(outputDir string) *OutputManager {
	return &OutputManager{OutputDir: outputDir}
}

// EnsureDir creates the output directory if it does not exist.
func (om *OutputManager) EnsureDir() error {
	if err := os.MkdirAll(om.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", om.OutputDir, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// DefaultFileName returns the date-stamped default workbook name, for
// example "walmart_price_update_20240115.xlsx".
func DefaultFileName() string {
	return fmt.Sprintf("walmart_price_update_%s.xlsx", time.Now().Format("20060102"))
}

// ResolveFileName sanitizes a user-provided name into a safe .xlsx file
// name. An empty or fully-stripped name falls back to the default.
func ResolveFileName(requested string) string {
	cleaned := normalize.Filename(requested)
	if cleaned == "" {
		return DefaultFileName()
	}
	return normalize.EnsureXLSX(cleaned)
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes a workbook buffer under the given file name and returns the
// full path. When the name is already taken and OverwriteExisting is off, a
// short unique suffix is inserted before the extension.
func (om *OutputManager) Save(fileName string, workbook *bytes.Buffer) (string, error) {
	if err := om.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(om.OutputDir, fileName)
	if !om.OverwriteExisting && FileExists(path) {
		path = filepath.Join(om.OutputDir, uniqueName(fileName))
	}

	if err := os.WriteFile(path, workbook.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	return path, nil
}

// uniqueName inserts a short random suffix before the file extension.
func uniqueName(fileName string) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
