package refsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priceops/priceprep/internal/cache"
	"github.com/priceops/priceprep/internal/csvtab"
	"github.com/priceops/priceprep/internal/rowtable"
)

func parseCSV(t *testing.T, body string) *csvtab.Data {
	t.Helper()
	data, err := csvtab.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return data
}

func TestBuildRefTableMissingColumns(t *testing.T) {
	data := parseCSV(t, "SKU,Publish Status\nA,Published\n")

	_, err := BuildRefTable(data)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Price"}, schemaErr.Missing)
}

func TestBuildRefTableLastOccurrenceWins(t *testing.T) {
	data := parseCSV(t, "SKU,Publish Status,Price\nA,Published,10\nA,Unpublished,20\n")

	ref, err := BuildRefTable(data)
	require.NoError(t, err)
	require.Equal(t, 1, ref.Len())

	status, price := ref.Lookup("A")
	assert.Equal(t, "Unpublished", status)
	assert.Equal(t, "20", price)
}

func TestBuildRefTableDropsBlankSKUs(t *testing.T) {
	data := parseCSV(t, "SKU,Publish Status,Price\nnan,Published,10\n ,Published,20\nB,Published,30\n")

	ref, err := BuildRefTable(data)
	require.NoError(t, err)
	assert.Equal(t, 1, ref.Len())
}

func TestLookupSemantics(t *testing.T) {
	data := parseCSV(t, "SKU,Publish Status,Price\nA,Published,10.50\nB,Unpublished,\n")

	ref, err := BuildRefTable(data)
	require.NoError(t, err)

	status, price := ref.Lookup("A")
	assert.Equal(t, "Published", status)
	assert.Equal(t, "10.5", price)

	// Blank reference price stays blank, never zero.
	status, price = ref.Lookup("B")
	assert.Equal(t, "Unpublished", status)
	assert.Equal(t, "", price)

	// Unseen SKU always resolves, never to an absence.
	status, price = ref.Lookup("X")
	assert.Equal(t, StatusNotFound, status)
	assert.Equal(t, "", price)

	// Blank SKU resolves to blank columns.
	status, price = ref.Lookup("")
	assert.Equal(t, "", status)
	assert.Equal(t, "", price)
}

func TestApplyLeavesInputColumnsAlone(t *testing.T) {
	data := parseCSV(t, "SKU,Publish Status,Price\nA,Published,10\n")
	ref, err := BuildRefTable(data)
	require.NoError(t, err)

	rows := ref.Apply([]rowtable.Row{
		{SKU: " A ", NewPrice: "₹1,200", PublishStatus: "stale", CurrentPrice: "stale"},
		{SKU: "X", NewPrice: "5"},
	})

	assert.Equal(t, "A", rows[0].SKU)
	assert.Equal(t, "₹1,200", rows[0].NewPrice)
	assert.Equal(t, "Published", rows[0].PublishStatus)
	assert.Equal(t, "10", rows[0].CurrentPrice)

	assert.Equal(t, StatusNotFound, rows[1].PublishStatus)
	assert.Equal(t, "", rows[1].CurrentPrice)
}

// rewriteTransport sends every request to the test server, whatever host the
// export URL names.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestResolver(t *testing.T, handler http.HandlerFunc) (*Resolver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client := NewClient(
		WithHTTPClient(&http.Client{Transport: rewriteTransport{target: target}, Timeout: time.Second}),
		WithCache(cache.NewMemory(), time.Minute),
	)
	return NewResolver(client), srv
}

func TestResolveJoinsAndCaches(t *testing.T) {
	fetches := 0
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, "SKU,Publish Status,Price\nA,Published,10\n")
	})

	table := rowtable.New(2)
	require.NoError(t, table.SetInput(0, "A", "12"))
	require.NoError(t, table.SetInput(1, "B", "7"))

	link := "https://docs.google.com/spreadsheets/d/testsheet/edit"
	require.NoError(t, resolver.Resolve(context.Background(), link, table))

	rows := table.Rows()
	assert.Equal(t, "Published", rows[0].PublishStatus)
	assert.Equal(t, "10", rows[0].CurrentPrice)
	assert.Equal(t, StatusNotFound, rows[1].PublishStatus)

	// A second resolve is served from cache.
	require.NoError(t, resolver.Resolve(context.Background(), link, table))
	assert.Equal(t, 1, fetches)
}

func TestResolveFetchFailureLeavesTable(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	table := rowtable.New(1)
	require.NoError(t, table.SetInput(0, "A", "12"))
	before := table.Rows()

	err := resolver.Resolve(context.Background(),
		"https://docs.google.com/spreadsheets/d/testsheet/edit", table)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.URL, "/d/testsheet/")
	assert.Equal(t, before, table.Rows())
}

func TestResolveSchemaFailureLeavesTable(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "SKU,Price\nA,10\n")
	})

	table := rowtable.New(1)
	require.NoError(t, table.SetInput(0, "A", "12"))
	before := table.Rows()

	err := resolver.Resolve(context.Background(),
		"https://docs.google.com/spreadsheets/d/testsheet/edit", table)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Publish Status"}, schemaErr.Missing)
	assert.Equal(t, before, table.Rows())
}

func TestResolveInvalidLink(t *testing.T) {
	resolver := NewResolver(NewClient())
	err := resolver.Resolve(context.Background(), "https://example.com/", rowtable.New(1))
	assert.True(t, errors.Is(err, ErrInvalidSheetLink))
}
