// =============================================================================
// Price Update Preparation Tool - Reference Resolver
// =============================================================================
//
// The resolver joins the user's row table against the remote status sheet.
// The sheet must carry exactly the columns "SKU", "Publish Status" and
// "Price"; anything else is a SchemaError naming what is missing.
//
// JOIN SEMANTICS:
//   - reference SKUs are normalized; blank-SKU reference rows are dropped
//   - duplicate reference SKUs resolve last-occurrence-wins
//   - an input SKU absent from the sheet gets status "SKU Not Found" and a
//     blank current price; absence never surfaces as an error or a nil
//   - a blank/unparseable reference price yields a blank current price,
//     never zero
//   - only Publish Status and Current Price are written back; SKU and
//     New Price stay exactly as the user entered them (apart from SKU
//     normalization, which the join itself needs)
//
// The row table is only replaced on full success. Any failure leaves it
// untouched.
//
// =============================================================================

package refsheet

import (
	"bytes"
	"context"

	"github.com/priceops/priceprep/internal/csvtab"
	"github.com/priceops/priceprep/internal/normalize"
	"github.com/priceops/priceprep/internal/rowtable"
)

// Required reference sheet column names. Exact matches; the sheet owner
// controls the header row.
const (
	ColSKU    = "SKU"
	ColStatus = "Publish Status"
	ColPrice  = "Price"
)

// StatusNotFound is the publish status written for SKUs missing from the
// reference sheet. The validator matches on this exact text.
const StatusNotFound = "SKU Not Found"

// Entry is one deduplicated reference sheet row.
type Entry struct {
	// Status is the raw publish status text from the sheet.
	Status string

	// Price is the current marketplace price, already formatted for display.
	// Blank when the sheet cell was empty or not numeric.
	Price string
}

// RefTable is the deduplicated SKU -> Entry lookup built from one fetch.
type RefTable struct {
	entries map[string]Entry
}

// BuildRefTable validates the sheet schema and builds the lookup map.
func BuildRefTable(data *csvtab.Data) (*RefTable, error) {
	if missing := data.MissingHeaders(ColSKU, ColStatus, ColPrice); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	entries := make(map[string]Entry, len(data.Rows))
	for _, row := range data.Rows {
		sku := normalize.SKU(row[ColSKU])
		if sku == "" {
			continue
		}

		price := ""
		if v, ok := normalize.Price(row[ColPrice]); ok {
			price = normalize.FormatPrice(v)
		}

		// Later occurrences overwrite earlier ones.
		entries[sku] = Entry{Status: row[ColStatus], Price: price}
	}

	return &RefTable{entries: entries}, nil
}

// Len returns the number of distinct reference SKUs.
func (rt *RefTable) Len() int {
	return len(rt.entries)
}

// Lookup resolves one normalized SKU. A blank SKU resolves to blank columns;
// an unseen SKU resolves to StatusNotFound with a blank price.
func (rt *RefTable) Lookup(sku string) (status, currentPrice string) {
	if sku == "" {
		return "", ""
	}
	entry, ok := rt.entries[sku]
	if !ok {
		return StatusNotFound, ""
	}
	return entry.Status, entry.Price
}

// Apply joins the lookup onto a copy of the given rows. SKUs in the result
// are normalized; New Price values pass through untouched.
func (rt *RefTable) Apply(rows []rowtable.Row) []rowtable.Row {
	out := make([]rowtable.Row, len(rows))
	for i, row := range rows {
		sku := normalize.SKU(row.SKU)
		status, price := rt.Lookup(sku)
		out[i] = rowtable.Row{
			SKU:           sku,
			NewPrice:      row.NewPrice,
			PublishStatus: status,
			CurrentPrice:  price,
		}
	}
	return out
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver ties the client and the join together for callers that hold a
// share link and a row table.
type Resolver struct {
	client *Client
}

// NewResolver creates a Resolver around a Client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Fetch derives the export URL from a share link, retrieves the sheet and
// builds the lookup table. The link is validated before any network call.
func (r *Resolver) Fetch(ctx context.Context, link string) (*RefTable, error) {
	url, err := ExportURL(link)
	if err != nil {
		return nil, err
	}

	body, err := r.client.FetchCSV(ctx, url)
	if err != nil {
		return nil, err
	}

	data, err := csvtab.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return BuildRefTable(data)
}

// Resolve fetches the sheet for link and replaces the table contents with the
// joined result. The table is not mutated unless every step succeeds.
func (r *Resolver) Resolve(ctx context.Context, link string, table *rowtable.Table) error {
	ref, err := r.Fetch(ctx, link)
	if err != nil {
		return err
	}
	table.SetRows(ref.Apply(table.Rows()))
	return nil
}
