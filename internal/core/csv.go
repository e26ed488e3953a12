package core

// csv.go implements the catalog's CSV dialect.
//
// The dialect is line based: a physical line is a record, so quoted fields
// cannot span lines. Cells containing a comma, a double quote or a newline are
// quoted on export with embedded quotes doubled. Stray quotes inside an
// unquoted cell toggle quoting instead of failing the import.

import (
	"io"
	"strconv"
	"strings"
	"time"
)

// Columns is the exported header, in order.
var Columns = []string{
	"id", "barcode", "name", "category", "supplier",
	"cost", "price", "stock", "minStock", "location", "notes",
}

// Row maps a header name to its trimmed cell value.
type Row map[string]string

// splitState is the state of the line splitter automaton.
type splitState int

const (
	stateOutside splitState = iota // between or inside unquoted text
	stateQuoted                    // inside a quoted run
)

// SplitLine splits one CSV line into cells.
//
// Outside quotes a '"' enters the quoted state and a ',' ends the cell.
// Inside quotes a '""' pair emits one literal quote, a single '"' leaves the
// quoted state, and a ',' is literal. The final cell is always emitted, so an
// empty line yields one empty cell.
func SplitLine(line string) []string {
	var (
		out   []string
		cur   strings.Builder
		state = stateOutside
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch state {
		case stateOutside:
			switch ch {
			case '"':
				state = stateQuoted
			case ',':
				out = append(out, cur.String())
				cur.Reset()
			default:
				cur.WriteByte(ch)
			}
		case stateQuoted:
			switch {
			case ch == '"' && i+1 < len(line) && line[i+1] == '"':
				cur.WriteByte('"')
				i++
			case ch == '"':
				state = stateOutside
			default:
				cur.WriteByte(ch)
			}
		}
	}

	return append(out, cur.String())
}

// FormatCell quotes a value if it contains a comma, a double quote or a newline.
func FormatCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatLine joins cells into one CSV line. SplitLine(FormatLine(c)) == c for
// any cells without newlines.
func FormatLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = FormatCell(c)
	}
	return strings.Join(quoted, ",")
}

// ParseCSV parses catalog CSV text into rows keyed by header.
//
// Carriage returns are dropped and empty lines skipped. The first remaining
// line is the header. Missing trailing cells become empty strings and extra
// cells are ignored. Returns nil when the text has no non-empty lines.
func ParseCSV(text string) []Row {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := SplitLine(lines[0])
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := SplitLine(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(cells) {
				v = strings.TrimSpace(cells[i])
			}
			row[h] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// productCells returns p's cells in Columns order.
func productCells(p Product) []string {
	return []string{
		p.ID,
		p.Barcode,
		p.Name,
		p.Category,
		p.Supplier,
		formatAmount(p.Cost),
		formatAmount(p.Price),
		strconv.Itoa(p.Stock),
		strconv.Itoa(p.MinStock),
		p.Location,
		p.Notes,
	}
}

// EncodeCSV renders products as CSV text: the header line followed by one
// line per product, joined with "\n" and without a trailing newline.
func EncodeCSV(products []Product) string {
	lines := make([]string, 0, len(products)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, p := range products {
		lines = append(lines, FormatLine(productCells(p)))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes EncodeCSV(products) to w.
func WriteCSV(w io.Writer, products []Product) error {
	_, err := io.WriteString(w, EncodeCSV(products))
	return err
}

// ExportFileName returns the download name for an export taken at t.
func ExportFileName(t time.Time) string {
	return "stock_" + t.Format("2006-01-02") + ".csv"
}
