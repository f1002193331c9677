package positioning

import (
	"errors"
	"strings"
	"testing"
)

const cotSample = `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,Open_Interest_All
"WHEAT-SRW - CHICAGO BOARD OF TRADE",240102,412345
"CORN - CHICAGO BOARD OF TRADE",240102,1523456
"GOLD - COMMODITY EXCHANGE INC.",240102,498765
"SILVER - COMMODITY EXCHANGE INC.",240102,143210
"EURO FX - CHICAGO MERCANTILE EXCHANGE",240102,701234
"JAPANESE YEN - CHICAGO MERCANTILE EXCHANGE",240102,198765
`

func TestPreviewDefaultRows(t *testing.T) {
	table, err := Preview(strings.NewReader(cotSample), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Header) != 3 || table.Header[0] != "Market_and_Exchange_Names" {
		t.Fatalf("unexpected header: %v", table.Header)
	}
	if len(table.Rows) != DefaultRows {
		t.Fatalf("expected %d rows, got %d", DefaultRows, len(table.Rows))
	}
	if table.Rows[2][0] != "GOLD - COMMODITY EXCHANGE INC." {
		t.Fatalf("unexpected row: %v", table.Rows[2])
	}
}

func TestPreviewShortInput(t *testing.T) {
	table, err := Preview(strings.NewReader("a,b\n1,2\n"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
}

func TestPreviewHeaderOnly(t *testing.T) {
	table, err := Preview(strings.NewReader("a,b\n"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rows == nil || len(table.Rows) != 0 {
		t.Fatalf("expected empty rows, got %v", table.Rows)
	}
}

func TestPreviewMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"ragged":       "a,b\n1,2,3\n",
		"unterminated": "a,b\n\"1,2\n",
	}
	for name, input := range cases {
		if _, err := Preview(strings.NewReader(input), 5); !errors.Is(err, ErrMalformedCSV) {
			t.Fatalf("%s: expected ErrMalformedCSV, got %v", name, err)
		}
	}
}

func TestPreviewHugeRowCount(t *testing.T) {
	table, err := Preview(strings.NewReader("a,b\n1,2\n"), 1<<40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if cap(table.Rows) > MaxRows {
		t.Fatalf("expected bounded capacity, got %d", cap(table.Rows))
	}
}

func TestPreviewClampsToMaxRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < MaxRows+10; i++ {
		b.WriteString("1\n")
	}
	table, err := Preview(strings.NewReader(b.String()), MaxRows*2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != MaxRows {
		t.Fatalf("expected %d rows, got %d", MaxRows, len(table.Rows))
	}
}
