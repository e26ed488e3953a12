package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/JonMunkholm/stockroom/internal/logging"
	"github.com/JonMunkholm/stockroom/internal/storage"
)

// DefaultStorageKey is the key holding the catalog document.
const DefaultStorageKey = "super_stock_v1"

// StoreOptions configures OpenStore.
type StoreOptions struct {
	Key  string // storage key; DefaultStorageKey if empty
	Seed bool   // seed example products when the catalog is empty
}

// Store is the ordered product collection and the single source of truth.
//
// Every mutation runs on a copy of the collection, writes the whole copy to
// storage, and only then replaces the in-memory state. A failed write leaves
// the store exactly as it was.
type Store struct {
	kv  storage.KV
	key string

	mu       sync.RWMutex
	products []Product
}

// OpenStore loads the catalog from kv.
//
// A missing or unparsable document yields an empty catalog; with opts.Seed an
// empty catalog is then filled with SeedProducts and persisted. Storage read
// errors other than a missing key are returned.
func OpenStore(ctx context.Context, kv storage.KV, opts StoreOptions) (*Store, error) {
	key := opts.Key
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{kv: kv, key: key}

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 && opts.Seed {
		products = SeedProducts()
		if err := s.persist(ctx, products); err != nil {
			return nil, err
		}
		slog.Info("catalog seeded", "key", key, "products", len(products))
	}

	s.products = products
	slog.Info("catalog loaded", "key", key, "products", len(products))
	return s, nil
}

// load reads and decodes the stored document.
func (s *Store) load(ctx context.Context) ([]Product, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		slog.Warn("stored catalog is unreadable, starting empty", "key", s.key, "error", err)
		return nil, nil
	}
	for i := range products {
		products[i] = products[i].normalize()
	}
	return products, nil
}

// persist overwrites the stored document with products.
func (s *Store) persist(ctx context.Context, products []Product) error {
	if products == nil {
		products = []Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the catalog. If fn reports a change the copy
// is persisted and swapped in.
func (s *Store) mutate(ctx context.Context, fn func([]Product) ([]Product, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(clone(s.products))
	if err != nil || !changed {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

func clone(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func indexOf(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// validateInput trims the input and checks required fields.
func validateInput(in ProductInput) (ProductInput, error) {
	in = in.trimmed()
	if in.Name == "" {
		return in, &ValidationError{Field: "name", Err: ErrNameRequired}
	}
	return in, nil
}

// ApplyDelta returns max(0, stock+delta).
func ApplyDelta(stock, delta int) int {
	if n := stock + delta; n > 0 {
		return n
	}
	return 0
}

// Get returns the product with id.
func (s *Store) Get(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.products, id); i >= 0 {
		return s.products[i], nil
	}
	return Product{}, &NotFoundError{ID: id}
}

// Snapshot returns a copy of the catalog in store order.
func (s *Store) Snapshot() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.products)
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Query returns the filtered, sorted view of the catalog.
func (s *Store) Query(q Query) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return QueryView(s.products, q)
}

// Options returns the current filter option lists.
func (s *Store) Options() FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildFilterOptions(s.products)
}

// Stats aggregates the whole catalog.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.products)
}

// Create adds a product with a new id at the top of the catalog.
func (s *Store) Create(ctx context.Context, in ProductInput) (Product, error) {
	in, err := validateInput(in)
	if err != nil {
		return Product{}, err
	}

	p := in.apply(Product{ID: newIDFunc()})
	err = s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		return append([]Product{p}, products...), true, nil
	})
	if err != nil {
		return Product{}, err
	}

	changeLog(ctx).Info("product created", "id", p.ID, "name", p.Name)
	return p, nil
}

// Update replaces the editable fields of the product with id.
func (s *Store) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	in, err := validateInput(in)
	if err != nil {
		return Product{}, err
	}

	var updated Product
	err = s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, false, &NotFoundError{ID: id}
		}
		products[i] = in.apply(products[i])
		updated = products[i]
		return products, true, nil
	})
	if err != nil {
		return Product{}, err
	}

	changeLog(ctx).Info("product updated", "id", id)
	return updated, nil
}

// Delete removes the product with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, false, &NotFoundError{ID: id}
		}
		return append(products[:i], products[i+1:]...), true, nil
	})
	if err != nil {
		return err
	}

	changeLog(ctx).Info("product deleted", "id", id)
	return nil
}

// BulkDelete removes every product whose id is in ids and returns how many
// were removed. Ids that are no longer present are ignored.
func (s *Store) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, &ValidationError{Field: "selection", Err: ErrEmptySelection}
	}
	selected := toSet(ids)

	removed := 0
	err := s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		kept := products[:0]
		for _, p := range products {
			if selected[p.ID] {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		return kept, removed > 0, nil
	})
	if err != nil {
		return 0, err
	}

	changeLog(ctx).Info("products deleted", "requested", len(ids), "deleted", removed)
	return removed, nil
}

// AdjustStock moves the stock of one product by qty in direction dir,
// clamping at zero.
func (s *Store) AdjustStock(ctx context.Context, id string, dir Direction, qty int) (Product, error) {
	if qty <= 0 {
		return Product{}, &ValidationError{Field: "quantity", Err: ErrInvalidQuantity}
	}

	var adjusted Product
	err := s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, false, &NotFoundError{ID: id}
		}
		products[i].Stock = ApplyDelta(products[i].Stock, dir.signed(qty))
		adjusted = products[i]
		return products, true, nil
	})
	if err != nil {
		return Product{}, err
	}

	changeLog(ctx).Info("stock adjusted", "id", id, "direction", dir, "quantity", qty, "stock", adjusted.Stock)
	return adjusted, nil
}

// BulkAdjustStock applies the same clamped adjustment to every selected
// product and returns how many were adjusted. Unselected products are untouched.
func (s *Store) BulkAdjustStock(ctx context.Context, ids []string, dir Direction, qty int) (int, error) {
	if len(ids) == 0 {
		return 0, &ValidationError{Field: "selection", Err: ErrEmptySelection}
	}
	if qty <= 0 {
		return 0, &ValidationError{Field: "quantity", Err: ErrInvalidQuantity}
	}
	selected := toSet(ids)
	delta := dir.signed(qty)

	adjusted := 0
	err := s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		for i := range products {
			if !selected[products[i].ID] {
				continue
			}
			products[i].Stock = ApplyDelta(products[i].Stock, delta)
			adjusted++
		}
		return products, adjusted > 0, nil
	})
	if err != nil {
		return 0, err
	}

	changeLog(ctx).Info("stock adjusted in bulk", "direction", dir, "quantity", qty, "adjusted", adjusted)
	return adjusted, nil
}

// Import parses CSV from r and merges it into the catalog.
// A file without data rows is rejected with a ParseError and changes nothing.
func (s *Store) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, err := ReadCSV(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv: %w", err)
	}
	return s.ImportRows(ctx, rows)
}

// ImportRows merges already parsed rows into the catalog.
func (s *Store) ImportRows(ctx context.Context, rows []Row) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, &ParseError{Err: ErrEmptyCSV}
	}

	var res ImportResult
	err := s.mutate(ctx, func(products []Product) ([]Product, bool, error) {
		var merged []Product
		merged, res = MergeRows(products, rows)
		return merged, true, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	changeLog(ctx).Info("catalog imported", "rows", res.Rows, "added", res.Added, "updated", res.Updated)
	return res, nil
}

// Export writes the whole catalog as CSV in store order.
func (s *Store) Export(w io.Writer) error {
	return WriteCSV(w, s.Snapshot())
}

// changeLog returns the request logger tagged with the acting client.
func changeLog(ctx context.Context) *slog.Logger {
	return logging.WithFields(ctx, ActorFromContext(ctx).logArgs()...)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
