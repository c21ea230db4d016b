package rowtable

import "testing"

func TestNewClampsRowCount(t *testing.T) {
	if got := New(0).Len(); got != MinRows {
		t.Errorf("New(0).Len() = %d, want %d", got, MinRows)
	}
	if got := New(5000).Len(); got != MaxRows {
		t.Errorf("New(5000).Len() = %d, want %d", got, MaxRows)
	}
	if got := New(10).Len(); got != 10 {
		t.Errorf("New(10).Len() = %d, want 10", got)
	}
}

func TestResizePreservesPrefix(t *testing.T) {
	tbl := New(3)
	if err := tbl.SetInput(0, "A", "10"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetInput(2, "C", "30"); err != nil {
		t.Fatal(err)
	}

	tbl.Resize(5)
	if tbl.Len() != 5 {
		t.Fatalf("Len() after grow = %d, want 5", tbl.Len())
	}
	rows := tbl.Rows()
	if rows[0].SKU != "A" || rows[2].SKU != "C" {
		t.Errorf("grow did not preserve existing rows: %+v", rows)
	}
	if !rows[3].IsBlank() || !rows[4].IsBlank() {
		t.Errorf("grow did not pad with blank rows: %+v", rows[3:])
	}

	tbl.Resize(2)
	if tbl.Len() != 2 {
		t.Fatalf("Len() after shrink = %d, want 2", tbl.Len())
	}
	if tbl.Rows()[0].SKU != "A" {
		t.Errorf("shrink did not preserve row 0")
	}
}

func TestClearKeepsLength(t *testing.T) {
	tbl := New(4)
	_ = tbl.SetInput(1, "B", "20")

	tbl.Clear()
	if tbl.Len() != 4 {
		t.Fatalf("Len() after Clear = %d, want 4", tbl.Len())
	}
	for i, r := range tbl.Rows() {
		if !r.IsBlank() || r.PublishStatus != "" || r.CurrentPrice != "" {
			t.Errorf("row %d not blank after Clear: %+v", i, r)
		}
	}
}

func TestSetInputLeavesResolverColumns(t *testing.T) {
	tbl := New(1)
	tbl.SetRows([]Row{{SKU: "A", NewPrice: "1", PublishStatus: "Published", CurrentPrice: "9"}})

	if err := tbl.SetInput(0, "B", "2"); err != nil {
		t.Fatal(err)
	}
	row, _ := tbl.Row(0)
	if row.SKU != "B" || row.NewPrice != "2" {
		t.Errorf("input cells not updated: %+v", row)
	}
	if row.PublishStatus != "Published" || row.CurrentPrice != "9" {
		t.Errorf("resolver cells should be untouched: %+v", row)
	}
}

func TestSetInputOutOfRange(t *testing.T) {
	tbl := New(2)
	if err := tbl.SetInput(2, "X", "1"); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := tbl.SetInput(-1, "X", "1"); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	tbl := New(1)
	rows := tbl.Rows()
	rows[0].SKU = "mutated"

	got, _ := tbl.Row(0)
	if got.SKU != "" {
		t.Error("mutating Rows() result leaked into the table")
	}
}
