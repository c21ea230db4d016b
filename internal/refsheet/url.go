// =============================================================================
// Price Update Preparation Tool - Sheet Link Parsing
// =============================================================================
//
// The reference sheet is configured as a regular share link of the form
//   https://docs.google.com/spreadsheets/d/<id>/edit?usp=sharing
// The resolver fetches the sheet as CSV via the export endpoint
//   https://docs.google.com/spreadsheets/d/<id>/export?format=csv
// so the <id> segment is lifted out of the link and rebuilt into the export
// URL. A link without a "/d/<id>/" segment is rejected before any fetch.
//
// =============================================================================

package refsheet

import (
	"fmt"
	"strings"
)

// ExtractSheetID pulls the sheet ID out of a share link. Returns "" when the
// link has no "/d/<id>" segment.
func ExtractSheetID(link string) string {
	_, tail, found := strings.Cut(link, "/d/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(tail, "/")
	return strings.TrimSpace(id)
}

// ExportURL derives the CSV export URL for a share link.
func ExportURL(link string) (string, error) {
	id := ExtractSheetID(link)
	if id == "" {
		return "", ErrInvalidSheetLink
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", id), nil
}
