package memory

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

func (s *Store) ListProductRefs(ctx context.Context) ([]store.ProductRef, error) {
	var out []store.ProductRef
	err := s.read(ctx, func(d *dataset) error {
		products := sortedValues(d.products, nil, productLess)
		out = make([]store.ProductRef, 0, len(products))
		for _, p := range products {
			ref := store.ProductRef{Product: p}
			if p.CategoryID != nil {
				ref.CategoryName = d.categories[*p.CategoryID].Name
			}
			if p.BrandID != nil {
				ref.BrandName = d.brands[*p.BrandID].Name
			}
			out = append(out, ref)
		}
		return nil
	})
	return out, err
}

// withProduct pairs each row with its product's name, dropping orphans the
// way an inner join would.
func withProduct[T any](d *dataset, rows []T, owner func(T) uuid.UUID) []store.Named[T] {
	out := make([]store.Named[T], 0, len(rows))
	for _, r := range rows {
		p, ok := d.products[owner(r)]
		if !ok {
			continue
		}
		out = append(out, store.Named[T]{Row: r, ProductName: p.Name})
	}
	return out
}

func (s *Store) ListSpecificationsWithProduct(ctx context.Context) ([]store.Named[catalog.Specification], error) {
	var out []store.Named[catalog.Specification]
	err := s.read(ctx, func(d *dataset) error {
		rows := sortedValues(d.specs, nil, func(a, b catalog.Specification) bool {
			return byCreated(a.CreatedAt, b.CreatedAt, a.ProductID, b.ProductID)
		})
		out = withProduct(d, rows, func(s catalog.Specification) uuid.UUID { return s.ProductID })
		return nil
	})
	return out, err
}

func (s *Store) ListReviewsWithProduct(ctx context.Context) ([]store.Named[catalog.Review], error) {
	var out []store.Named[catalog.Review]
	err := s.read(ctx, func(d *dataset) error {
		rows := sortedValues(d.reviews, nil, func(a, b catalog.Review) bool {
			if a.ProductID != b.ProductID {
				return a.ProductID.String() < b.ProductID.String()
			}
			return reviewLess(a, b)
		})
		out = withProduct(d, rows, func(r catalog.Review) uuid.UUID { return r.ProductID })
		return nil
	})
	return out, err
}

func (s *Store) ListAssetsWithProduct(ctx context.Context) ([]store.Named[catalog.Asset], error) {
	var out []store.Named[catalog.Asset]
	err := s.read(ctx, func(d *dataset) error {
		rows := sortedValues(d.assets, nil, assetLess)
		out = withProduct(d, rows, func(a catalog.Asset) uuid.UUID { return a.ProductID })
		return nil
	})
	return out, err
}

func (s *Store) ListInventoriesWithProduct(ctx context.Context) ([]store.Named[catalog.Inventory], error) {
	var out []store.Named[catalog.Inventory]
	err := s.read(ctx, func(d *dataset) error {
		rows := sortedValues(d.inventory, nil, func(a, b catalog.Inventory) bool {
			return byCreated(a.CreatedAt, b.CreatedAt, a.ProductID, b.ProductID)
		})
		out = withProduct(d, rows, func(i catalog.Inventory) uuid.UUID { return i.ProductID })
		return nil
	})
	return out, err
}

func (s *Store) ListPricingWithProduct(ctx context.Context) ([]store.Named[catalog.Pricing], error) {
	var out []store.Named[catalog.Pricing]
	err := s.read(ctx, func(d *dataset) error {
		rows := sortedValues(d.pricing, nil, func(a, b catalog.Pricing) bool {
			return byCreated(a.CreatedAt, b.CreatedAt, a.ProductID, b.ProductID)
		})
		out = withProduct(d, rows, func(p catalog.Pricing) uuid.UUID { return p.ProductID })
		return nil
	})
	return out, err
}
