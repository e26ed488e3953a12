package core

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildFilterOptions(t *testing.T) {
	products := []Product{
		{Category: "Lácteos", Supplier: "Distribuidora Norte"},
		{Category: "Almacén", Supplier: "La Serenísima"},
		{Category: "Ferretería", Supplier: ""},
		{Category: "", Supplier: "distribuidora norte"},
	}

	opts := BuildFilterOptions(products)

	wantCats := []string{
		"Almacén", "Bebidas", "Carnes", "Congelados", "Ferretería", "Lácteos",
		"Limpieza", "Panadería", "Perfumería", "Verdulería",
	}
	if !reflect.DeepEqual(opts.Categories, wantCats) {
		t.Errorf("Categories = %v, want %v", opts.Categories, wantCats)
	}

	for _, s := range []string{"Distribuidora Norte", "distribuidora norte", "La Serenísima", "Arcor"} {
		if count(opts.Suppliers, s) != 1 {
			t.Errorf("Suppliers should contain %q exactly once: %v", s, opts.Suppliers)
		}
	}
	if count(opts.Suppliers, "") != 0 {
		t.Errorf("Suppliers contains an empty value: %v", opts.Suppliers)
	}
	if opts.Suppliers[0] != "Ala" {
		t.Errorf("Suppliers[0] = %q, want Ala", opts.Suppliers[0])
	}
}

func count(values []string, v string) int {
	n := 0
	for _, x := range values {
		if x == v {
			n++
		}
	}
	return n
}

func TestBuildFilterOptions_DoesNotAliasDefaults(t *testing.T) {
	before := append([]string(nil), DefaultCategories...)
	BuildFilterOptions([]Product{{Category: "Aaa"}})
	if !reflect.DeepEqual(DefaultCategories, before) {
		t.Errorf("DefaultCategories modified: %v", DefaultCategories)
	}
}

func TestComputeStats(t *testing.T) {
	products := []Product{
		{Cost: 100, Price: 150, Stock: 2, MinStock: 1},  // normal
		{Cost: 10, Price: 20.5, Stock: 3, MinStock: 3},  // low
		{Cost: 999, Price: 1999, Stock: 0, MinStock: 0}, // depleted
	}

	st := ComputeStats(products)

	if st.Products != 3 {
		t.Errorf("Products = %d, want 3", st.Products)
	}
	if st.LowStock != 2 {
		t.Errorf("LowStock = %d, want 2", st.LowStock)
	}
	if math.Abs(st.CostValue-230) > 1e-9 {
		t.Errorf("CostValue = %v, want 230", st.CostValue)
	}
	if math.Abs(st.PriceValue-361.5) > 1e-9 {
		t.Errorf("PriceValue = %v, want 361.5", st.PriceValue)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("ComputeStats(nil) = %+v, want zero", got)
	}
}

func TestSeedProducts(t *testing.T) {
	stubIDs(t)

	seed := SeedProducts()
	if len(seed) != 3 {
		t.Fatalf("len = %d, want 3", len(seed))
	}

	seen := map[string]bool{}
	statuses := map[Status]int{}
	for _, p := range seed {
		if p.ID == "" || seen[p.ID] {
			t.Errorf("seed id %q is empty or duplicated", p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" {
			t.Error("seed product without name")
		}
		statuses[p.Status()]++
	}

	// One of each status so every badge shows on first run.
	for _, s := range []Status{StatusNormal, StatusLowStock, StatusDepleted} {
		if statuses[s] != 1 {
			t.Errorf("seed has %d products with status %s, want 1", statuses[s], s)
		}
	}
}
