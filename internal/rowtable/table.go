// =============================================================================
// Price Update Preparation Tool - Row Table
// =============================================================================
//
// This module holds the editable row table backing one user session. A row is
// a (SKU, New Price) pair entered by the user plus two read-only columns
// (Publish Status, Current Price) filled in by the reference resolver.
//
// Row identity is positional: duplicates are allowed in the table and are only
// flagged later by validation. The table is plain mutable state; concurrency
// control is the session registry's job, not the table's.
//
// =============================================================================

package rowtable

import "fmt"

// Row count bounds for a table. A table always has at least one row and is
// capped to keep paste payloads and template output bounded.
const (
	MinRows = 1
	MaxRows = 1000
)

// Row is a single entry in the table. All cells are raw strings exactly as
// entered or as written back by the resolver.
type Row struct {
	SKU           string `json:"sku"`
	NewPrice      string `json:"new_price"`
	PublishStatus string `json:"publish_status"`
	CurrentPrice  string `json:"current_price"`
}

// IsBlank reports whether the user entered nothing into the row. Resolver
// columns are ignored; a row with only a stale status is still blank.
func (r Row) IsBlank() bool {
	return r.SKU == "" && r.NewPrice == ""
}

// Table is an ordered, fixed-length set of rows.
type Table struct {
	rows []Row
}

// New creates a table of n blank rows. n is clamped to [MinRows, MaxRows].
func New(n int) *Table {
	t := &Table{}
	t.rows = make([]Row, clampRowCount(n))
	return t
}

// Len returns the current row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the table contents. Mutating the returned slice does
// not affect the table.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row at index i.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, fmt.Errorf("row index %d out of range [0, %d)", i, len(t.rows))
	}
	return t.rows[i], nil
}

// SetInput overwrites the user-editable cells of row i, leaving the resolver
// columns in place.
func (t *Table) SetInput(i int, sku, newPrice string) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row index %d out of range [0, %d)", i, len(t.rows))
	}
	t.rows[i].SKU = sku
	t.rows[i].NewPrice = newPrice
	return nil
}

// SetRows replaces the table contents wholesale. The new length is clamped to
// [MinRows, MaxRows]; extra rows are dropped.
func (t *Table) SetRows(rows []Row) {
	n := clampRowCount(len(rows))
	t.rows = make([]Row, n)
	copy(t.rows, rows)
}

// Resize grows or shrinks the table to n rows. Growing pads with blank rows
// at the end; shrinking truncates. Existing rows keep their positions.
func (t *Table) Resize(n int) {
	n = clampRowCount(n)
	switch {
	case n < len(t.rows):
		t.rows = t.rows[:n]
	case n > len(t.rows):
		padded := make([]Row, n)
		copy(padded, t.rows)
		t.rows = padded
	}
}

// Clear resets every row to blank without changing the row count.
func (t *Table) Clear() {
	t.rows = make([]Row, len(t.rows))
}

func clampRowCount(n int) int {
	if n < MinRows {
		return MinRows
	}
	if n > MaxRows {
		return MaxRows
	}
	return n
}
