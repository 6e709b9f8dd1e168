// Package core provides the business logic of the product catalog.
//
// This package holds all domain rules independent of any transport. Web
// handlers, CLI tools and tests use it without modification; persistence is
// reached only through the store.Store port.
//
// # Aggregates
//
// A product owns at most one specification (sharing the product's id) and any
// number of assets. [Service.CreateProduct], [Service.UpdateProduct] and
// [Service.DeleteProduct] change the product row and its specification in one
// store transaction.
//
// Inventory and pricing are singleton rows keyed by product id. Saves use
// optimistic versioning: the caller sends the version it read (0 for "no row
// yet") and a stale version fails with a *catalog.ConflictError.
//
// Reviews are keyed by (product, user, comment id). Comment ids come from a
// store-side counter per (product, user), so concurrent saves never collide
// and deleted ids are never reissued.
//
// # Import and export
//
// [Service.Import] parses a delimited payload (charset decoding, BOM removal,
// UTF-8 sanitizing, then internal/tabular), maps rows to products with lenient
// category/brand resolution, and applies them in "add" or "replace" mode in a
// single transaction. Concurrent imports are bounded by [ImportLimiter].
//
// [Service.Export] flattens every dataset into rows with canonical snake_case
// keys, renamed through a caller mapping; [EncodeCSV] renders one dataset.
//
// # Error Handling
//
// Errors wrap the kinds declared in package catalog. [MapError] turns them into
// user messages with support codes:
//
//   - CAT001-CAT005: catalog kinds (not found, invalid, conflict, constraint, internal)
//   - DB004-DB007: database connectivity
//   - IMP001-IMP002: import capacity and encoding
//   - RATE001: rate limiting
package core
