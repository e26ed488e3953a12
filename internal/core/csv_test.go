package core

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain cells", "a,b,c", []string{"a", "b", "c"}},
		{"empty line yields one empty cell", "", []string{""}},
		{"trailing comma yields empty last cell", "a,", []string{"a", ""}},
		{"quoted comma is literal", `"a,b",c`, []string{"a,b", "c"}},
		{"doubled quote inside quotes", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty quoted cell", `"",x`, []string{"", "x"}},
		{"quote toggles mid cell", `ab"c,d"e`, []string{"abc,de"}},
		{"spaces are preserved", " a , b ", []string{" a ", " b "}},
		{"unterminated quote runs to end", `"a,b`, []string{"a,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"a,b", `"a,b"`},
		{`He said "hi", ok`, `"He said ""hi"", ok"`},
		{"two\nlines", "\"two\nlines\""},
		{`"`, `""""`},
	}

	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLine_RoundTrip(t *testing.T) {
	cases := [][]string{
		{"a", "b", "c"},
		{"", "", ""},
		{`He said "hi", ok`},
		{"a,b", `"quoted"`, "plain", ""},
		{`""`, `,`, `","`},
		{"Góndola A3", "Lácteos", "ñandú"},
	}

	for _, cells := range cases {
		line := FormatLine(cells)
		got := SplitLine(line)
		if !reflect.DeepEqual(got, cells) {
			t.Errorf("SplitLine(FormatLine(%q)) = %q (line %q)", cells, got, line)
		}
	}
}

func TestQuoteEscaping(t *testing.T) {
	const value = `He said "hi", ok`
	encoded := FormatCell(value)
	if encoded != `"He said ""hi"", ok"` {
		t.Fatalf("FormatCell = %q", encoded)
	}
	got := SplitLine(encoded)
	if len(got) != 1 || got[0] != value {
		t.Errorf("SplitLine(%q) = %q, want [%q]", encoded, got, value)
	}
}

func TestParseCSV(t *testing.T) {
	text := "id, name ,stock\r\n\r\n1,Milk,5\r\n2,\"Bread, white\"\r\n"
	rows := ParseCSV(text)

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0]["name"] != "Milk" || rows[0]["stock"] != "5" || rows[0]["id"] != "1" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1]["name"] != "Bread, white" {
		t.Errorf("rows[1][name] = %q, want %q", rows[1]["name"], "Bread, white")
	}
	if v, ok := rows[1]["stock"]; !ok || v != "" {
		t.Errorf("missing cell = %q (present %v), want empty string", v, ok)
	}
}

func TestParseCSV_TrimsCells(t *testing.T) {
	rows := ParseCSV("name,notes\n  Milk  , fresh \n")
	if rows[0]["name"] != "Milk" || rows[0]["notes"] != "fresh" {
		t.Errorf("rows[0] = %v", rows[0])
	}
}

func TestParseCSV_StripsBOM(t *testing.T) {
	rows := ParseCSV("\uFEFFname\nMilk")
	if len(rows) != 1 || rows[0]["name"] != "Milk" {
		t.Errorf("rows = %v", rows)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "\r\n\r\n"} {
		if rows := ParseCSV(text); len(rows) != 0 {
			t.Errorf("ParseCSV(%q) = %v, want empty", text, rows)
		}
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	if rows := ParseCSV("id,name\n"); len(rows) != 0 {
		t.Errorf("ParseCSV(header only) = %v, want empty", rows)
	}
}

func TestEncodeCSV(t *testing.T) {
	products := []Product{
		{ID: "1", Barcode: "779", Name: "Milk", Category: "Lácteos", Supplier: "La Serenísima",
			Cost: 1100, Price: 1500.5, Stock: 24, MinStock: 10, Location: "A3"},
		{ID: "2", Name: `Soap "Ala", 750ml`, Notes: "promo"},
	}

	got := EncodeCSV(products)
	want := strings.Join([]string{
		"id,barcode,name,category,supplier,cost,price,stock,minStock,location,notes",
		"1,779,Milk,Lácteos,La Serenísima,1100,1500.5,24,10,A3,",
		`2,,"Soap ""Ala"", 750ml",,,0,0,0,0,,promo`,
	}, "\n")

	if got != want {
		t.Errorf("EncodeCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeCSV_Deterministic(t *testing.T) {
	products := SeedProducts()
	if EncodeCSV(products) != EncodeCSV(products) {
		t.Error("EncodeCSV is not deterministic")
	}
}

func TestEncodeCSV_RoundTrip(t *testing.T) {
	original := []Product{
		{ID: "a1", Barcode: "7791234567890", Name: "Leche, entera", Category: "Lácteos",
			Supplier: "La Serenísima", Cost: 1100.25, Price: 1500, Stock: 24, MinStock: 10,
			Location: "Góndola A3", Notes: `dijo "ok"`},
		{ID: "a2", Name: "Fideos", Stock: 0, MinStock: 12},
	}

	rows := ParseCSV(EncodeCSV(original))
	merged, res := MergeRows(nil, rows)

	if res.Added != 2 || res.Updated != 0 {
		t.Fatalf("result = %+v, want 2 added", res)
	}
	if !reflect.DeepEqual(merged, original) {
		t.Errorf("round trip =\n%+v\nwant\n%+v", merged, original)
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	if got := ExportFileName(ts); got != "stock_2024-03-09.csv" {
		t.Errorf("ExportFileName = %q", got)
	}
}
