package memory

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func (s *Store) GetInventory(ctx context.Context, productID uuid.UUID) (catalog.Inventory, error) {
	var inv catalog.Inventory
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.inventory[productID]
		if !ok {
			return catalog.NotFoundf("inventory for product %s", productID)
		}
		inv = found
		return nil
	})
	return inv, err
}

func (s *Store) ListInventories(ctx context.Context) ([]catalog.Inventory, error) {
	var out []catalog.Inventory
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.inventory, nil, func(a, b catalog.Inventory) bool {
			return byCreated(a.CreatedAt, b.CreatedAt, a.ProductID, b.ProductID)
		})
		return nil
	})
	return out, err
}

func (s *Store) InsertInventory(ctx context.Context, inv catalog.Inventory) (catalog.Inventory, error) {
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[inv.ProductID]; !ok {
			return catalog.Constraintf("inventory references missing product %s", inv.ProductID)
		}
		if _, exists := d.inventory[inv.ProductID]; exists {
			return &catalog.ConflictError{Kind: "inventory", ProductID: inv.ProductID}
		}
		now := s.now()
		inv.Version = 1
		inv.CreatedAt, inv.UpdatedAt = now, now
		d.inventory[inv.ProductID] = inv
		return nil
	})
	if err != nil {
		return catalog.Inventory{}, err
	}
	return inv, nil
}

func (s *Store) UpdateInventory(ctx context.Context, inv catalog.Inventory, expectedVersion int64) (catalog.Inventory, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.inventory[inv.ProductID]
		if !ok {
			return catalog.NotFoundf("inventory for product %s", inv.ProductID)
		}
		if existing.Version != expectedVersion {
			return &catalog.ConflictError{Kind: "inventory", ProductID: inv.ProductID}
		}
		inv.Version = expectedVersion + 1
		inv.CreatedAt = existing.CreatedAt
		inv.UpdatedAt = s.now()
		d.inventory[inv.ProductID] = inv
		return nil
	})
	if err != nil {
		return catalog.Inventory{}, err
	}
	return inv, nil
}

func (s *Store) DeleteInventory(ctx context.Context, productID uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.inventory[productID]; !ok {
			return catalog.NotFoundf("inventory for product %s", productID)
		}
		delete(d.inventory, productID)
		return nil
	})
}

func (s *Store) GetPricing(ctx context.Context, productID uuid.UUID) (catalog.Pricing, error) {
	var p catalog.Pricing
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.pricing[productID]
		if !ok {
			return catalog.NotFoundf("pricing for product %s", productID)
		}
		p = found
		return nil
	})
	return p, err
}

func (s *Store) ListPricing(ctx context.Context) ([]catalog.Pricing, error) {
	var out []catalog.Pricing
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.pricing, nil, func(a, b catalog.Pricing) bool {
			return byCreated(a.CreatedAt, b.CreatedAt, a.ProductID, b.ProductID)
		})
		return nil
	})
	return out, err
}

func (s *Store) InsertPricing(ctx context.Context, p catalog.Pricing) (catalog.Pricing, error) {
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[p.ProductID]; !ok {
			return catalog.Constraintf("pricing references missing product %s", p.ProductID)
		}
		if _, exists := d.pricing[p.ProductID]; exists {
			return &catalog.ConflictError{Kind: "pricing", ProductID: p.ProductID}
		}
		now := s.now()
		p.Version = 1
		p.CreatedAt, p.UpdatedAt = now, now
		d.pricing[p.ProductID] = p
		return nil
	})
	if err != nil {
		return catalog.Pricing{}, err
	}
	return p, nil
}

func (s *Store) UpdatePricing(ctx context.Context, p catalog.Pricing, expectedVersion int64) (catalog.Pricing, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.pricing[p.ProductID]
		if !ok {
			return catalog.NotFoundf("pricing for product %s", p.ProductID)
		}
		if existing.Version != expectedVersion {
			return &catalog.ConflictError{Kind: "pricing", ProductID: p.ProductID}
		}
		p.Version = expectedVersion + 1
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = s.now()
		d.pricing[p.ProductID] = p
		return nil
	})
	if err != nil {
		return catalog.Pricing{}, err
	}
	return p, nil
}

func (s *Store) DeletePricing(ctx context.Context, productID uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.pricing[productID]; !ok {
			return catalog.NotFoundf("pricing for product %s", productID)
		}
		delete(d.pricing, productID)
		return nil
	})
}
