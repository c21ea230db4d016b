// =============================================================================
// Price Update Preparation Tool - Reference Sheet Errors
// =============================================================================
//
// Typed errors for the resolve operation. Callers use errors.As/errors.Is to
// map them onto user-facing messages and HTTP statuses:
//   - ErrInvalidSheetLink : the share link has no extractable sheet ID
//   - SchemaError         : the sheet is reachable but missing columns
//   - FetchError          : the sheet could not be retrieved or parsed
//
// All of them are fatal to the resolve operation only; the caller's row table
// stays untouched.
//
// =============================================================================

package refsheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSheetLink means the configured share link does not contain a
// sheet ID and no export URL can be derived from it.
var ErrInvalidSheetLink = errors.New("invalid reference sheet link")

// SchemaError reports required columns absent from the reference sheet.
type SchemaError struct {
	// Missing lists the required column names not present in the header,
	// in canonical order.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("reference sheet is missing required columns: %s",
		strings.Join(e.Missing, ", "))
}

// FetchError reports a failure retrieving or parsing the reference sheet.
type FetchError struct {
	// URL is the export URL the fetch was attempted against.
	URL string

	// Err is the underlying cause (network, HTTP status, CSV parse).
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch reference sheet from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
