// =============================================================================
// Price Update Preparation Tool - Upload Template Writer
// =============================================================================
//
// This module projects the writable row set onto the marketplace upload
// workbook. The workbook layout is fixed by the marketplace:
//   - data starts at row 7
//   - SKUs go into column D
//   - the new price is mirrored into columns E, F and G
//
// The writer clears the data rectangle first (old template contents or a
// previous fill must not bleed through below a shorter batch), then writes
// the rows in order and serializes the whole workbook into memory. Filling
// either fully succeeds or produces nothing.
//
// =============================================================================

package template

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/validation"
)

// Fixed cell layout of the upload template.
const (
	// StartRow is the first data row (1-indexed, as in the workbook).
	StartRow = 7

	// SKUColumn receives the SKU of each writable row.
	SKUColumn = "D"
)

// PriceColumns are the mirror columns; each receives the identical new price
// per row.
var PriceColumns = []string{"E", "F", "G"}

// clearMargin is how many rows beyond the batch get blanked, so leftovers
// from larger previous fills cannot survive.
const clearMargin = 50

// MissingError reports an absent template workbook. It is checked proactively
// by callers so the problem surfaces before a download is attempted.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("upload template not found at %s", e.Path)
}

// Writer fills the upload template from writable rows.
type Writer struct {
	path string
	log  *zap.Logger
}

// NewWriter creates a Writer for the template workbook at path.
func NewWriter(path string, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{path: path, log: log}
}

// Check verifies the template workbook exists.
func (w *Writer) Check() error {
	if _, err := os.Stat(w.path); err != nil {
		return &MissingError{Path: w.path}
	}
	return nil
}

// Fill writes the rows into a copy of the template and returns the complete
// workbook as an in-memory byte stream.
func (w *Writer) Fill(rows []validation.WritableRow) (*bytes.Buffer, error) {
	if err := w.Check(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("template has no active sheet")
	}

	existing, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read template rows: %w", err)
	}

	// Blank the data rectangle: from the start row through the template's
	// current extent or the batch plus margin, whichever reaches further.
	clearThrough := StartRow + len(rows) + clearMargin
	if len(existing) > clearThrough {
		clearThrough = len(existing)
	}
	for r := StartRow; r <= clearThrough; r++ {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", SKUColumn, r), nil); err != nil {
			return nil, fmt.Errorf("failed to clear row %d: %w", r, err)
		}
		for _, col := range PriceColumns {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r), nil); err != nil {
				return nil, fmt.Errorf("failed to clear row %d: %w", r, err)
			}
		}
	}

	for i, row := range rows {
		r := StartRow + i
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", SKUColumn, r), row.SKU); err != nil {
			return nil, fmt.Errorf("failed to write SKU at row %d: %w", r, err)
		}
		for _, col := range PriceColumns {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r), row.NewPrice); err != nil {
				return nil, fmt.Errorf("failed to write price at row %d: %w", r, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	w.log.Info("filled upload template",
		zap.Int("rows", len(rows)),
		zap.Int("bytes", buf.Len()),
	)
	return buf, nil
}
