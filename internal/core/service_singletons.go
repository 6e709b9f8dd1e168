package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

// singletonService implements save/update/delete with optimistic versioning
// for a record keyed by product id. Inventory and Pricing differ only in the
// store operations plugged in here.
type singletonService[T any] struct {
	kind string

	productID  func(T) uuid.UUID
	version    func(T) int64
	bind       func(rec T, productID uuid.UUID) T
	get        func(ctx context.Context, q store.Queries, productID uuid.UUID) (T, error)
	list       func(ctx context.Context, q store.Queries) ([]T, error)
	insert     func(ctx context.Context, q store.Queries, rec T) (T, error)
	update     func(ctx context.Context, q store.Queries, rec T, expected int64) (T, error)
	deleteByID func(ctx context.Context, q store.Queries, productID uuid.UUID) error
}

func (ss *singletonService[T]) conflict(productID uuid.UUID) error {
	return &catalog.ConflictError{Kind: ss.kind, ProductID: productID}
}

// save inserts rec when no row exists, otherwise overwrites every field.
// rec's version must match the stored one; version 0 asserts that no row
// exists yet.
func (ss *singletonService[T]) save(ctx context.Context, st store.Store, rec T) (T, error) {
	var out T
	productID := ss.productID(rec)

	err := st.InTx(ctx, func(q store.Queries) error {
		existing, err := ss.get(ctx, q, productID)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			if ss.version(rec) != 0 {
				return ss.conflict(productID)
			}
			exists, err := q.ProductExists(ctx, productID)
			if err != nil {
				return err
			}
			if !exists {
				return catalog.NotFoundf("product %s", productID)
			}
			out, err = ss.insert(ctx, q, rec)
			if err != nil {
				return fmt.Errorf("insert %s: %w", ss.kind, err)
			}
			return nil
		case err != nil:
			return err
		}

		if ss.version(rec) != ss.version(existing) {
			return ss.conflict(productID)
		}
		out, err = ss.update(ctx, q, rec, ss.version(existing))
		if err != nil {
			return fmt.Errorf("update %s: %w", ss.kind, err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// updateExisting replaces every field of the row at productID. A non-zero
// version on changes must match the stored row.
func (ss *singletonService[T]) updateExisting(ctx context.Context, st store.Store, productID uuid.UUID, changes T) (T, error) {
	var out T
	changes = ss.bind(changes, productID)

	err := st.InTx(ctx, func(q store.Queries) error {
		existing, err := ss.get(ctx, q, productID)
		if err != nil {
			return err
		}
		expected := ss.version(existing)
		if v := ss.version(changes); v != 0 && v != expected {
			return ss.conflict(productID)
		}
		out, err = ss.update(ctx, q, changes, expected)
		if err != nil {
			return fmt.Errorf("update %s: %w", ss.kind, err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (ss *singletonService[T]) remove(ctx context.Context, st store.Store, productID uuid.UUID) error {
	return ss.deleteByID(ctx, st, productID)
}

func (ss *singletonService[T]) find(ctx context.Context, st store.Store, productID uuid.UUID) (T, bool, error) {
	rec, err := ss.get(ctx, st, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return rec, true, nil
}

func newInventoryService() *singletonService[catalog.Inventory] {
	return &singletonService[catalog.Inventory]{
		kind:      "inventory",
		productID: func(i catalog.Inventory) uuid.UUID { return i.ProductID },
		version:   func(i catalog.Inventory) int64 { return i.Version },
		bind: func(i catalog.Inventory, id uuid.UUID) catalog.Inventory {
			i.ProductID = id
			return i
		},
		get: func(ctx context.Context, q store.Queries, id uuid.UUID) (catalog.Inventory, error) {
			return q.GetInventory(ctx, id)
		},
		list: func(ctx context.Context, q store.Queries) ([]catalog.Inventory, error) {
			return q.ListInventories(ctx)
		},
		insert: func(ctx context.Context, q store.Queries, i catalog.Inventory) (catalog.Inventory, error) {
			return q.InsertInventory(ctx, i)
		},
		update: func(ctx context.Context, q store.Queries, i catalog.Inventory, expected int64) (catalog.Inventory, error) {
			return q.UpdateInventory(ctx, i, expected)
		},
		deleteByID: func(ctx context.Context, q store.Queries, id uuid.UUID) error {
			return q.DeleteInventory(ctx, id)
		},
	}
}

func newPricingService() *singletonService[catalog.Pricing] {
	return &singletonService[catalog.Pricing]{
		kind:      "pricing",
		productID: func(p catalog.Pricing) uuid.UUID { return p.ProductID },
		version:   func(p catalog.Pricing) int64 { return p.Version },
		bind: func(p catalog.Pricing, id uuid.UUID) catalog.Pricing {
			p.ProductID = id
			return p
		},
		get: func(ctx context.Context, q store.Queries, id uuid.UUID) (catalog.Pricing, error) {
			return q.GetPricing(ctx, id)
		},
		list: func(ctx context.Context, q store.Queries) ([]catalog.Pricing, error) {
			return q.ListPricing(ctx)
		},
		insert: func(ctx context.Context, q store.Queries, p catalog.Pricing) (catalog.Pricing, error) {
			return q.InsertPricing(ctx, p)
		},
		update: func(ctx context.Context, q store.Queries, p catalog.Pricing, expected int64) (catalog.Pricing, error) {
			return q.UpdatePricing(ctx, p, expected)
		},
		deleteByID: func(ctx context.Context, q store.Queries, id uuid.UUID) error {
			return q.DeletePricing(ctx, id)
		},
	}
}

// =============================================================================
// Inventory
// =============================================================================

// SaveInventory inserts or overwrites the inventory row of inv.ProductID.
// A stale inv.Version fails with a *catalog.ConflictError.
func (s *Service) SaveInventory(ctx context.Context, inv catalog.Inventory) (catalog.Inventory, error) {
	return s.inventory.save(ctx, s.store, inv)
}

// UpdateInventory replaces the existing inventory row of productID.
func (s *Service) UpdateInventory(ctx context.Context, productID uuid.UUID, changes catalog.Inventory) (catalog.Inventory, error) {
	return s.inventory.updateExisting(ctx, s.store, productID, changes)
}

// DeleteInventory removes the inventory row of productID.
func (s *Service) DeleteInventory(ctx context.Context, productID uuid.UUID) error {
	return s.inventory.remove(ctx, s.store, productID)
}

// GetInventory returns the inventory row of productID, if any.
func (s *Service) GetInventory(ctx context.Context, productID uuid.UUID) (catalog.Inventory, bool, error) {
	return s.inventory.find(ctx, s.store, productID)
}

// ListInventories returns every inventory row.
func (s *Service) ListInventories(ctx context.Context) ([]catalog.Inventory, error) {
	return s.inventory.list(ctx, s.store)
}

// =============================================================================
// Pricing
// =============================================================================

// SavePricing inserts or overwrites the pricing row of p.ProductID.
func (s *Service) SavePricing(ctx context.Context, p catalog.Pricing) (catalog.Pricing, error) {
	return s.pricing.save(ctx, s.store, p)
}

// UpdatePricing replaces the existing pricing row of productID.
func (s *Service) UpdatePricing(ctx context.Context, productID uuid.UUID, changes catalog.Pricing) (catalog.Pricing, error) {
	return s.pricing.updateExisting(ctx, s.store, productID, changes)
}

// DeletePricing removes the pricing row of productID.
func (s *Service) DeletePricing(ctx context.Context, productID uuid.UUID) error {
	return s.pricing.remove(ctx, s.store, productID)
}

// GetPricing returns the pricing row of productID, if any.
func (s *Service) GetPricing(ctx context.Context, productID uuid.UUID) (catalog.Pricing, bool, error) {
	return s.pricing.find(ctx, s.store, productID)
}

// ListPricing returns every pricing row.
func (s *Service) ListPricing(ctx context.Context) ([]catalog.Pricing, error) {
	return s.pricing.list(ctx, s.store)
}
