package core

import "strings"

// Product is a single catalog record.
// JSON keys match the persisted document written by earlier versions of the tool.
type Product struct {
	ID       string  `json:"id"`
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Supplier string  `json:"supplier"`
	Cost     float64 `json:"cost"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
	Location string  `json:"location"`
	Notes    string  `json:"notes"`
}

// Status reports the stock health of a product.
func (p Product) Status() Status {
	return Classify(p.Stock, p.MinStock)
}

// normalize clamps numeric fields that must never be negative.
func (p Product) normalize() Product {
	if p.Stock < 0 {
		p.Stock = 0
	}
	if p.MinStock < 0 {
		p.MinStock = 0
	}
	if p.Cost < 0 {
		p.Cost = 0
	}
	if p.Price < 0 {
		p.Price = 0
	}
	return p
}

// ProductInput carries the editable fields of a product from a form or API call.
// The ID is never part of the input: it is assigned on create and immutable after.
type ProductInput struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Supplier string  `json:"supplier"`
	Cost     float64 `json:"cost"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
	Location string  `json:"location"`
	Notes    string  `json:"notes"`
}

// apply overlays the input onto p, keeping p.ID.
func (in ProductInput) apply(p Product) Product {
	p.Barcode = in.Barcode
	p.Name = in.Name
	p.Category = in.Category
	p.Supplier = in.Supplier
	p.Cost = in.Cost
	p.Price = in.Price
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.Location = in.Location
	p.Notes = in.Notes
	return p.normalize()
}

// lineBreaks folds line breaks into spaces. Exported CSV is one record per
// line, so a stored newline would split the record on re-import.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func cleanText(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

// trimmed returns a copy with text fields on a single line and without
// surrounding whitespace.
func (in ProductInput) trimmed() ProductInput {
	in.Barcode = cleanText(in.Barcode)
	in.Name = cleanText(in.Name)
	in.Category = cleanText(in.Category)
	in.Supplier = cleanText(in.Supplier)
	in.Location = cleanText(in.Location)
	in.Notes = cleanText(in.Notes)
	return in
}

// Direction is the sign of a stock adjustment.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ParseDirection accepts "in"/"out" and the aliases "increase"/"decrease".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "increase", "+":
		return DirectionIn, nil
	case "out", "decrease", "-":
		return DirectionOut, nil
	default:
		return "", &ValidationError{Field: "direction", Err: ErrInvalidDirection}
	}
}

// signed returns qty with the direction's sign applied.
func (d Direction) signed(qty int) int {
	if d == DirectionOut {
		return -qty
	}
	return qty
}

// StatusFilter selects products by stock status in a query.
type StatusFilter string

const (
	StatusAny  StatusFilter = ""
	StatusLow  StatusFilter = "low"
	StatusOK   StatusFilter = "ok"
	StatusZero StatusFilter = "zero"
)

// ParseStatusFilter maps a query value to a StatusFilter.
// Unknown values and "any" select every product.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusLow:
		return StatusLow
	case StatusOK:
		return StatusOK
	case StatusZero:
		return StatusZero
	default:
		return StatusAny
	}
}

// ParseValueFilter normalizes a category or supplier filter value.
// Blank and "any" (in any case) mean no filter; anything else must match exactly.
func ParseValueFilter(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "any") {
		return ""
	}
	return s
}

// Filters holds the active query criteria. Empty strings mean "any".
type Filters struct {
	Search   string
	Category string
	Supplier string
	Status   StatusFilter
}

// SortSpec represents a sort column and direction.
type SortSpec struct {
	Key string // Product JSON key, e.g. "name" or "minStock"
	Dir string // "asc" or "desc"
}

// DefaultSort orders the catalog by name ascending.
var DefaultSort = SortSpec{Key: "name", Dir: "asc"}

// Query bundles the filter and sort inputs of the query engine.
type Query struct {
	Filters Filters
	Sort    SortSpec
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Rows    int `json:"rows"`
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Stats aggregates the catalog for the summary panel.
type Stats struct {
	Products   int     `json:"products"`
	CostValue  float64 `json:"costValue"`
	PriceValue float64 `json:"priceValue"`
	LowStock   int     `json:"lowStock"`
}

// FilterOptions lists the values offered in the category and supplier filters.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Suppliers  []string `json:"suppliers"`
}
