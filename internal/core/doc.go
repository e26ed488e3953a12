// Package core provides the business logic for the inventory catalog.
//
// This package contains all domain logic independent of any UI or transport
// layer. It is used by the web server, the stockctl CLI and tests alike.
//
// # Architecture
//
//   - Store: the ordered product collection, persisted as one JSON document
//     through a storage.KV after every mutation.
//   - CSV codec: [EncodeCSV] / [ParseCSV] with a quote-aware line splitter;
//     [DecodeImport] accepts UTF-8 and Windows-1252 files.
//   - Import merge: [MergeRows] reconciles rows by id, then barcode, then name.
//   - Query engine: [QueryView] filters by search term, category, supplier and
//     stock status, then sorts.
//   - Stock classifier: [Classify] derives depleted / low / normal.
//
// # Mutations
//
// Every Store mutation works on a copy of the collection and only replaces the
// in-memory state after the copy has been written to storage:
//
//	store, err := core.OpenStore(ctx, kv, core.StoreOptions{Seed: true})
//	p, err := store.Create(ctx, core.ProductInput{Name: "Yerba 1kg", Stock: 10})
//	_, err = store.AdjustStock(ctx, p.ID, core.DirectionOut, 3)
//
// # Error Handling
//
// Rejected input is reported as [ValidationError], unusable CSV as
// [ParseError] and stale ids as [NotFoundError]. [MapError] turns any error
// into a [UserMessage] with a support code:
//
//   - VAL001-VAL005: validation (name, quantity, direction, selection, body)
//   - FILE001-FILE004: import files
//   - INV001: product not found
//   - STO001-STO002: storage
//   - RATE001-RATE002: throttling and busy imports
package core
