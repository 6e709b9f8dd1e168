package memory

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func productLess(a, b catalog.Product) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }

// joinSpecifications attaches each product's specification from the same
// snapshot the products were read from.
func joinSpecifications(d *dataset, products []catalog.Product) []catalog.Product {
	for i := range products {
		products[i].Specification = nil
		if spec, ok := d.specs[products[i].ID]; ok {
			products[i].Specification = &spec
		}
	}
	return products
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (catalog.Product, error) {
	var p catalog.Product
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.products[id]
		if !ok {
			return catalog.NotFoundf("product %s", id)
		}
		p = joinSpecifications(d, []catalog.Product{found})[0]
		return nil
	})
	return p, err
}

func (s *Store) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := s.read(ctx, func(d *dataset) error {
		_, ok = d.products[id]
		return nil
	})
	return ok, err
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	err := s.read(ctx, func(d *dataset) error {
		out = joinSpecifications(d, sortedValues(d.products, nil, productLess))
		return nil
	})
	return out, err
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.products, func(p catalog.Product) bool {
			return p.CategoryID != nil && *p.CategoryID == categoryID
		}, productLess)
		out = joinSpecifications(d, out)
		return nil
	})
	return out, err
}

func (s *Store) ListProductsByBrand(ctx context.Context, brandID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.products, func(p catalog.Product) bool {
			return p.BrandID != nil && *p.BrandID == brandID
		}, productLess)
		out = joinSpecifications(d, out)
		return nil
	})
	return out, err
}

func (s *Store) InsertProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	err := s.write(ctx, func(d *dataset) error {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if _, exists := d.products[p.ID]; exists {
			return catalog.Constraintf("product %s already exists", p.ID)
		}
		if err := checkProductRefs(d, p); err != nil {
			return err
		}
		now := s.now()
		p.CreatedAt, p.UpdatedAt = now, now
		p.Specification = nil
		d.products[p.ID] = p
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.products[p.ID]
		if !ok {
			return catalog.NotFoundf("product %s", p.ID)
		}
		if err := checkProductRefs(d, p); err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = s.now()
		p.Specification = nil
		d.products[p.ID] = p
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return catalog.NotFoundf("product %s", id)
		}
		if _, ok := d.specs[id]; ok {
			return catalog.Constraintf("specification still references product %s", id)
		}
		deleteProductRows(d, id)
		return nil
	})
}

func (s *Store) DeleteAllProducts(ctx context.Context) (int64, error) {
	var n int64
	err := s.write(ctx, func(d *dataset) error {
		if len(d.specs) > 0 {
			return catalog.Constraintf("%d specifications still reference products", len(d.specs))
		}
		for id := range d.products {
			deleteProductRows(d, id)
			n++
		}
		return nil
	})
	return n, err
}

// checkProductRefs enforces sku uniqueness and the category/brand foreign keys.
func checkProductRefs(d *dataset, p catalog.Product) error {
	if p.SKU != "" {
		for id, other := range d.products {
			if id != p.ID && other.SKU == p.SKU {
				return catalog.Constraintf("sku %q already exists", p.SKU)
			}
		}
	}
	if p.CategoryID != nil {
		if _, ok := d.categories[*p.CategoryID]; !ok {
			return catalog.Constraintf("category %s does not exist", *p.CategoryID)
		}
	}
	if p.BrandID != nil {
		if _, ok := d.brands[*p.BrandID]; !ok {
			return catalog.Constraintf("brand %s does not exist", *p.BrandID)
		}
	}
	return nil
}

// deleteProductRows removes a product and every row that cascades with it.
func deleteProductRows(d *dataset, id uuid.UUID) {
	delete(d.products, id)
	for assetID, a := range d.assets {
		if a.ProductID == id {
			delete(d.assets, assetID)
		}
	}
	delete(d.inventory, id)
	delete(d.pricing, id)
	for key := range d.reviews {
		if key.ProductID == id {
			delete(d.reviews, key)
		}
	}
	for key := range d.sequences {
		if key.productID == id {
			delete(d.sequences, key)
		}
	}
}
