package core

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// field identifies a product column recognized on import.
type field int

const (
	fieldID field = iota
	fieldBarcode
	fieldName
	fieldCategory
	fieldSupplier
	fieldCost
	fieldPrice
	fieldStock
	fieldMinStock
	fieldLocation
	fieldNotes
)

// fieldByHeader resolves a header cell to a field. Matching is
// case-insensitive so "MinStock" and "minstock" both map to minStock.
var fieldByHeader = func() map[string]field {
	m := make(map[string]field, len(Columns))
	for i, c := range Columns {
		m[strings.ToLower(c)] = field(i)
	}
	return m
}()

// candidate is an imported row coerced into a product.
type candidate struct {
	product Product
	hasID   bool
}

// newIDFunc generates product ids. Tests may replace it.
var newIDFunc = uuid.NewString

// rowCells resolves the cells of row to fields. A header spelled exactly like
// the column wins over case variants; among case variants the first in byte
// order is used, so duplicate headers resolve the same way on every run.
func rowCells(row Row) map[field]string {
	headers := make([]string, 0, len(row))
	for h := range row {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	cells := make(map[field]string, len(Columns))
	exact := make(map[field]bool, len(Columns))
	for _, h := range headers {
		name := strings.TrimSpace(h)
		f, ok := fieldByHeader[strings.ToLower(name)]
		if !ok || exact[f] {
			continue
		}
		if name == Columns[f] {
			cells[f] = row[h]
			exact[f] = true
			continue
		}
		if _, seen := cells[f]; !seen {
			cells[f] = row[h]
		}
	}
	return cells
}

// coerceRow turns a parsed row into a candidate. Unknown columns are ignored
// and missing ones take their defaults: "" for text, 0 for numbers (see
// ParseAmount and ParseQuantity).
func coerceRow(row Row) candidate {
	cells := rowCells(row)
	c := candidate{product: Product{
		ID:       cells[fieldID],
		Barcode:  cells[fieldBarcode],
		Name:     cells[fieldName],
		Category: cells[fieldCategory],
		Supplier: cells[fieldSupplier],
		Cost:     ParseAmount(cells[fieldCost]),
		Price:    ParseAmount(cells[fieldPrice]),
		Stock:    ParseQuantity(cells[fieldStock]),
		MinStock: ParseQuantity(cells[fieldMinStock]),
		Location: cells[fieldLocation],
		Notes:    cells[fieldNotes],
	}}

	c.hasID = c.product.ID != ""
	if !c.hasID {
		c.product.ID = newIDFunc()
	}
	return c
}

// overlay replaces every field of existing with the candidate's, including
// defaults for columns the file lacked. The existing id is kept: ids are
// immutable once assigned.
func (c candidate) overlay(existing Product) Product {
	p := c.product
	p.ID = existing.ID
	return p
}

// findMatch returns the index of the product the candidate reconciles with,
// or -1. Precedence is id, then barcode, then name; within each key the first
// product in store order wins. Empty barcode and name never match.
func findMatch(products []Product, c candidate) int {
	p := c.product
	if c.hasID {
		for i := range products {
			if products[i].ID == p.ID {
				return i
			}
		}
	}
	if p.Barcode != "" {
		for i := range products {
			if products[i].Barcode == p.Barcode {
				return i
			}
		}
	}
	if p.Name != "" {
		for i := range products {
			if products[i].Name == p.Name {
				return i
			}
		}
	}
	return -1
}

// MergeRows reconciles imported rows into products and returns the merged
// slice. Rows are applied in order, each against the result of the previous
// ones, so a later row can update a product added earlier in the same file.
// The input slice is not modified.
func MergeRows(products []Product, rows []Row) ([]Product, ImportResult) {
	out := make([]Product, len(products), len(products)+len(rows))
	copy(out, products)

	res := ImportResult{Rows: len(rows)}
	for _, row := range rows {
		c := coerceRow(row)
		if i := findMatch(out, c); i >= 0 {
			out[i] = c.overlay(out[i])
			res.Updated++
			continue
		}
		out = append(out, c.product)
		res.Added++
	}
	return out, res
}
