// =============================================================================
// Price Update Preparation Tool - CSV Table Reader
// =============================================================================
//
// Thin CSV-to-table layer shared by the reference resolver (which parses the
// sheet export body) and the process command (which parses the user's input
// pair file). The first row is the header; data rows become header->value
// maps with trimmed cells. Fully blank rows are skipped.
//
// =============================================================================

package csvtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Data is a parsed CSV table.
type Data struct {
	// Headers are the trimmed values of the first row.
	Headers []string

	// Rows are the data rows as header -> trimmed value maps. A row shorter
	// than the header gets empty strings for the missing columns.
	Rows []map[string]string
}

// MissingHeaders reports which of the given headers are absent from the
// table, in the order asked for.
func (d *Data) MissingHeaders(required ...string) []string {
	present := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		present[h] = true
	}

	var missing []string
	for _, h := range required {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

// Column returns all values of one column, in row order. Unknown headers
// yield empty strings per row.
func (d *Data) Column(header string) []string {
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[header]
	}
	return values
}

// Parse reads an entire CSV stream into a Data table.
//
// The reader is configured leniently: variable field counts and lazy quotes
// are accepted, since sheet exports and hand-made files are rarely strict.
func Parse(r io.Reader) (*Data, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := &Data{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		if isRowEmpty(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		data.Rows = append(data.Rows, row)
	}

	return data, nil
}

func isRowEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
