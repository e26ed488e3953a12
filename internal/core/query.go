package core

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatalogLanguage is the collation locale for sorting names and filter options.
var CatalogLanguage = language.Spanish

// newCollator returns a case-insensitive collator for CatalogLanguage.
// Collators are not safe for concurrent use, so each query builds its own.
func newCollator() *collate.Collator {
	return collate.New(CatalogLanguage, collate.IgnoreCase)
}

// sortKeys lists the product keys a query can sort by.
var sortKeys = map[string]bool{
	"id": true, "barcode": true, "name": true, "category": true,
	"supplier": true, "cost": true, "price": true, "stock": true,
	"minStock": true, "location": true, "notes": true,
}

// ParseSort builds a SortSpec from query parameters, falling back to
// DefaultSort for unknown keys. Any direction other than "desc" is ascending.
func ParseSort(key, dir string) SortSpec {
	key = strings.TrimSpace(key)
	if !sortKeys[key] {
		// Accept case variants such as "minstock".
		for k := range sortKeys {
			if strings.EqualFold(k, key) {
				key = k
				break
			}
		}
	}
	if !sortKeys[key] {
		key = DefaultSort.Key
	}
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return SortSpec{Key: key, Dir: "desc"}
	}
	return SortSpec{Key: key, Dir: "asc"}
}

// Toggle returns the sort a header click produces: clicking the active
// ascending column flips it to descending, anything else sorts ascending.
func (s SortSpec) Toggle(key string) SortSpec {
	if s.Key == key && s.Dir == "asc" {
		return SortSpec{Key: key, Dir: "desc"}
	}
	return SortSpec{Key: key, Dir: "asc"}
}

// sortValue returns the text a product contributes to a sort on key.
func sortValue(p Product, key string) string {
	switch key {
	case "id":
		return p.ID
	case "barcode":
		return p.Barcode
	case "category":
		return p.Category
	case "supplier":
		return p.Supplier
	case "cost":
		return formatAmount(p.Cost)
	case "price":
		return formatAmount(p.Price)
	case "stock":
		return strconv.Itoa(p.Stock)
	case "minStock":
		return strconv.Itoa(p.MinStock)
	case "location":
		return p.Location
	case "notes":
		return p.Notes
	default:
		return p.Name
	}
}

// compareValues orders two sort values. When both parse as finite numbers
// (blank counts as 0) they compare numerically; otherwise they compare as
// case-insensitive collated strings.
func compareValues(col *collate.Collator, a, b string) int {
	an, aok := parseFinite(a)
	bn, bok := parseFinite(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(strings.ToLower(a), strings.ToLower(b))
}

// matchesSearch reports whether term occurs in the product's name, barcode
// or supplier. term must already be lower case.
func matchesSearch(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Barcode), term) ||
		strings.Contains(strings.ToLower(p.Supplier), term)
}

// QueryView derives the filtered, sorted view of products.
//
// Filters apply in order: search term, category, supplier, status. The
// result is then stable-sorted by q.Sort. The input slice and its products are
// never modified; the returned slice is newly allocated.
func QueryView(products []Product, q Query) []Product {
	f := q.Filters
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Supplier != "" && p.Supplier != f.Supplier {
			continue
		}
		if !f.Status.matches(p.Status()) {
			continue
		}
		out = append(out, p)
	}

	by := q.Sort
	if !sortKeys[by.Key] {
		by = ParseSort(by.Key, by.Dir)
	}
	mult := 1
	if by.Dir == "desc" {
		mult = -1
	}

	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(col, sortValue(out[i], by.Key), sortValue(out[j], by.Key))*mult < 0
	})
	return out
}
