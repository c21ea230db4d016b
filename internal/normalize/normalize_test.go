package normalize

import "testing"

func TestSKU(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"nan", ""},
		{"NaN", ""},
		{"NONE", ""},
		{"none ", ""},
		{" ABC-123 ", "ABC-123"},
		{"nanometer", "nanometer"},
	}

	for _, c := range cases {
		if got := SKU(c.in); got != c.want {
			t.Errorf("SKU(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPrice(t *testing.T) {
	cases := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"₹1,200", 1200, true},
		{"$9.99", 9.99, true},
		{"$ 45", 45, true},
		{"1,234,567.5", 1234567.5, true},
		{"10", 10, true},
		{"-3", -3, true},
		{"0", 0, true},
		{"", 0, false},
		{"  ", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"₹", 0, false},
		{"12x", 0, false},
		{"Inf", 0, false},
	}

	for _, c := range cases {
		got, ok := Price(c.in)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("Price(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(1200); got != "1200" {
		t.Errorf("FormatPrice(1200) = %q, want %q", got, "1200")
	}
	if got := FormatPrice(9.99); got != "9.99" {
		t.Errorf("FormatPrice(9.99) = %q, want %q", got, "9.99")
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My File!! 2024", "My_File_2024"},
		{"walmart price update", "walmart_price_update"},
		{"a-b c", "a-b_c"},
		{"???", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := Filename(c.in); got != c.want {
			t.Errorf("Filename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnsureXLSX(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report", "report.xlsx"},
		{"report.xlsx", "report.xlsx"},
		{"report.XLSX", "report.XLSX"},
		{"report.csv", "report.csv.xlsx"},
	}

	for _, c := range cases {
		if got := EnsureXLSX(c.in); got != c.want {
			t.Errorf("EnsureXLSX(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
