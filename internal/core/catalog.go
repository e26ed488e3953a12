package core

import "sort"

// Default vocabularies offered in the filters even before any product uses them.
var (
	DefaultCategories = []string{
		"Lácteos", "Almacén", "Bebidas", "Limpieza", "Verdulería",
		"Carnes", "Panadería", "Perfumería", "Congelados",
	}
	DefaultSuppliers = []string{
		"La Serenísima", "Molinos", "Coca-Cola", "Ala", "Bimbo", "Swift", "Arcor",
	}
)

// BuildFilterOptions unions the default vocabularies with the non-empty
// categories and suppliers in use, de-duplicated and collated.
func BuildFilterOptions(products []Product) FilterOptions {
	cats := make([]string, 0, len(DefaultCategories)+len(products))
	sups := make([]string, 0, len(DefaultSuppliers)+len(products))
	cats = append(cats, DefaultCategories...)
	sups = append(sups, DefaultSuppliers...)
	for _, p := range products {
		if p.Category != "" {
			cats = append(cats, p.Category)
		}
		if p.Supplier != "" {
			sups = append(sups, p.Supplier)
		}
	}
	return FilterOptions{
		Categories: sortedUnique(cats),
		Suppliers:  sortedUnique(sups),
	}
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i], out[j]) < 0
	})
	return out
}

// ComputeStats aggregates the whole catalog, ignoring any active filter.
// LowStock counts every product that is not in normal status.
func ComputeStats(products []Product) Stats {
	st := Stats{Products: len(products)}
	for _, p := range products {
		st.CostValue += p.Cost * float64(p.Stock)
		st.PriceValue += p.Price * float64(p.Stock)
		if p.Status() != StatusNormal {
			st.LowStock++
		}
	}
	return st
}

// SeedProducts returns the example catalog used when storage is empty.
// Each call assigns fresh ids.
func SeedProducts() []Product {
	return []Product{
		{
			ID: newIDFunc(), Barcode: "7791234567890", Name: "Leche descremada 1L",
			Category: "Lácteos", Supplier: "La Serenísima",
			Cost: 1100, Price: 1500, Stock: 24, MinStock: 10, Location: "Góndola A3",
		},
		{
			ID: newIDFunc(), Barcode: "7790001112223", Name: "Fideos Spaghetti 500g",
			Category: "Almacén", Supplier: "Molinos",
			Cost: 700, Price: 980, Stock: 8, MinStock: 12, Location: "Góndola B1",
			Notes: "Promo 2x1 martes",
		},
		{
			ID: newIDFunc(), Barcode: "7798887776661", Name: "Detergente 750ml",
			Category: "Limpieza", Supplier: "Ala",
			Cost: 1500, Price: 2100, Stock: 0, MinStock: 5, Location: "Góndola D2",
		},
	}
}
