// =============================================================================
// Price Update Preparation Tool - Batch Validator
// =============================================================================
//
// This module classifies a row table into hard errors, not-found SKUs,
// unpublished SKUs and the writable subset that may go into the upload
// template.
//
// VALIDATION STRATEGY:
//   - all hard checks run independently over the non-blank rows; matching
//     messages are collected, never short-circuited
//   - any hard error blocks the download path entirely; there is no partial
//     write
//   - "unpublished" is a soft class: it warns and requires an explicit
//     confirmation, or is ignored outright, depending on the configured
//     policy. The gate itself lives with the orchestrator, not here.
//
// The validator is a pure function of the rows and the policy. It reads only
// text already present in the table (the resolver fills Publish Status); it
// never touches the network. Running it twice over unchanged rows yields an
// identical result.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/priceops/priceprep/internal/normalize"
	"github.com/priceops/priceprep/internal/refsheet"
	"github.com/priceops/priceprep/internal/rowtable"
)

// =============================================================================
// POLICY
// =============================================================================

// Policy selects how unpublished SKUs are treated.
type Policy int

const (
	// UnpublishedIgnore drops the unpublished classification entirely;
	// unpublished rows flow into the writable set with no warning.
	UnpublishedIgnore Policy = iota

	// UnpublishedWarnRequireConfirm collects unpublished SKUs as a soft
	// warning; the orchestrator must obtain an explicit confirmation before
	// allowing the download.
	UnpublishedWarnRequireConfirm
)

// ParsePolicy maps a config string onto a Policy. Unknown values default to
// the warn-and-confirm policy, the stricter of the two.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return UnpublishedIgnore
	default:
		return UnpublishedWarnRequireConfirm
	}
}

// =============================================================================
// RESULT
// =============================================================================

// WritableRow is one row eligible for the upload template.
type WritableRow struct {
	SKU      string  `json:"sku"`
	NewPrice float64 `json:"new_price"`
}

// Result is the full classification of one row table.
type Result struct {
	// HardErrors are the blocking messages, in check order. Non-empty means
	// the download path is closed until the user fixes the input.
	HardErrors []string `json:"hard_errors"`

	// NotFoundSKUs lists the SKUs whose publish status is "SKU Not Found",
	// in row order.
	NotFoundSKUs []string `json:"not_found_skus"`

	// UnpublishedSKUs lists SKUs with an unpublished status, in row order.
	// Always empty under the ignore policy.
	UnpublishedSKUs []string `json:"unpublished_skus"`

	// WritableRows is the subset eligible for the template, in input row
	// order, with unique SKUs and positive prices.
	WritableRows []WritableRow `json:"writable_rows"`
}

// OK reports whether the download path is open as far as hard checks go.
func (r *Result) OK() bool {
	return len(r.HardErrors) == 0
}

// NeedsConfirmation reports whether an explicit user confirmation is still
// required before a download (soft-fail gate).
func (r *Result) NeedsConfirmation() bool {
	return r.OK() && len(r.UnpublishedSKUs) > 0
}

// Hard error messages. The all-blank message replaces every other output.
const (
	msgAllBlank     = "All rows are blank."
	msgBlankSKU     = "Some SKU values are blank."
	msgBadPrice     = "Some New Price values are blank or not a number."
	msgNonPositive  = "Some New Price values are 0 or negative."
	msgNotFoundFmt  = "SKU Not Found on marketplace: %d"
	msgDuplicateFmt = "Duplicate SKU found: %d"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// normalizedRow is a row after SKU normalization and price parsing, used only
// within a single Validate call.
type normalizedRow struct {
	sku      string
	price    float64
	priceOK  bool
	status   string
	notFound bool
}

// Validate classifies the table's rows under the given policy.
func Validate(rows []rowtable.Row, policy Policy) *Result {
	result := &Result{}

	// Normalize and keep only non-blank rows: a row counts as present when
	// its normalized SKU is non-empty or its price parses.
	var nonblank []normalizedRow
	for _, row := range rows {
		n := normalizedRow{
			sku:    normalize.SKU(row.SKU),
			status: strings.TrimSpace(row.PublishStatus),
		}
		n.price, n.priceOK = normalize.Price(row.NewPrice)
		n.notFound = n.status == refsheet.StatusNotFound
		if n.sku == "" && !n.priceOK {
			continue
		}
		nonblank = append(nonblank, n)
	}

	if len(nonblank) == 0 {
		result.HardErrors = []string{msgAllBlank}
		return result
	}

	// Hard checks. Each runs over the whole set; matches are collected.
	var blankSKU, badPrice, nonPositive bool
	for _, n := range nonblank {
		if n.sku == "" {
			blankSKU = true
		}
		if !n.priceOK {
			badPrice = true
		} else if n.price <= 0 {
			nonPositive = true
		}
	}
	if blankSKU {
		result.HardErrors = append(result.HardErrors, msgBlankSKU)
	}
	if badPrice {
		result.HardErrors = append(result.HardErrors, msgBadPrice)
	}
	if nonPositive {
		result.HardErrors = append(result.HardErrors, msgNonPositive)
	}

	for _, n := range nonblank {
		if n.notFound {
			result.NotFoundSKUs = append(result.NotFoundSKUs, n.sku)
		}
	}
	if len(result.NotFoundSKUs) > 0 {
		result.HardErrors = append(result.HardErrors,
			fmt.Sprintf(msgNotFoundFmt, len(result.NotFoundSKUs)))
	}

	// Duplicate detection over non-empty SKUs. Reported as the number of
	// distinct duplicated values.
	seen := make(map[string]int)
	for _, n := range nonblank {
		if n.sku != "" {
			seen[n.sku]++
		}
	}
	duplicates := 0
	for _, count := range seen {
		if count > 1 {
			duplicates++
		}
	}
	if duplicates > 0 {
		result.HardErrors = append(result.HardErrors,
			fmt.Sprintf(msgDuplicateFmt, duplicates))
	}

	// Soft class: unpublished, excluding not-found rows. Only tracked under
	// the warn policy.
	if policy == UnpublishedWarnRequireConfirm {
		for _, n := range nonblank {
			if n.notFound {
				continue
			}
			if strings.Contains(strings.ToLower(n.status), "unpublished") {
				result.UnpublishedSKUs = append(result.UnpublishedSKUs, n.sku)
			}
		}
	}

	// Writable subset, in input order. Unpublished rows are included; the
	// confirmation gate is the orchestrator's decision. Duplicated SKUs are
	// excluded so writable SKUs stay unique (their hard error already blocks
	// the download).
	for _, n := range nonblank {
		if n.sku == "" || !n.priceOK || n.price <= 0 || n.notFound || seen[n.sku] > 1 {
			continue
		}
		result.WritableRows = append(result.WritableRows, WritableRow{
			SKU:      n.sku,
			NewPrice: n.price,
		})
	}

	return result
}
