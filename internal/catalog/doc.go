// Package catalog defines the product catalog domain model shared by the
// store adapters, the core services, and the HTTP layer.
//
// A Product is the aggregate root for its Specification and Assets. Inventory,
// Pricing, and Review rows reference a product by id and are addressed on
// their own. Relations are always held by id value; a Specification carries
// its owning product's id, never a pointer back to the Product.
//
// Errors returned across package boundaries wrap one of the sentinel kinds in
// errors.go so callers can branch with errors.Is.
package catalog
