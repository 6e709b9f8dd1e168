package memory

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func categoryLess(a, b catalog.Category) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }
func brandLess(a, b catalog.Brand) bool       { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (catalog.Category, error) {
	var c catalog.Category
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.categories[id]
		if !ok {
			return catalog.NotFoundf("category %s", id)
		}
		c = found
		return nil
	})
	return c, err
}

// GetCategoryByName returns the oldest category with exactly this name.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (catalog.Category, error) {
	var c catalog.Category
	err := s.read(ctx, func(d *dataset) error {
		matches := sortedValues(d.categories, func(c catalog.Category) bool { return c.Name == name }, categoryLess)
		if len(matches) == 0 {
			return catalog.NotFoundf("category %q", name)
		}
		c = matches[0]
		return nil
	})
	return c, err
}

func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.categories, nil, categoryLess)
		return nil
	})
	return out, err
}

func (s *Store) InsertCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	err := s.write(ctx, func(d *dataset) error {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if _, exists := d.categories[c.ID]; exists {
			return catalog.Constraintf("category %s already exists", c.ID)
		}
		now := s.now()
		c.CreatedAt, c.UpdatedAt = now, now
		d.categories[c.ID] = c
		return nil
	})
	if err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.categories[c.ID]
		if !ok {
			return catalog.NotFoundf("category %s", c.ID)
		}
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = s.now()
		d.categories[c.ID] = c
		return nil
	})
	if err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes the category and clears it from every product.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.categories[id]; !ok {
			return catalog.NotFoundf("category %s", id)
		}
		delete(d.categories, id)
		for pid, p := range d.products {
			if p.CategoryID != nil && *p.CategoryID == id {
				p.CategoryID = nil
				d.products[pid] = p
			}
		}
		return nil
	})
}

func (s *Store) GetBrand(ctx context.Context, id uuid.UUID) (catalog.Brand, error) {
	var b catalog.Brand
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.brands[id]
		if !ok {
			return catalog.NotFoundf("brand %s", id)
		}
		b = found
		return nil
	})
	return b, err
}

// GetBrandByName returns the oldest brand with exactly this name.
func (s *Store) GetBrandByName(ctx context.Context, name string) (catalog.Brand, error) {
	var b catalog.Brand
	err := s.read(ctx, func(d *dataset) error {
		matches := sortedValues(d.brands, func(b catalog.Brand) bool { return b.Name == name }, brandLess)
		if len(matches) == 0 {
			return catalog.NotFoundf("brand %q", name)
		}
		b = matches[0]
		return nil
	})
	return b, err
}

func (s *Store) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	var out []catalog.Brand
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.brands, nil, brandLess)
		return nil
	})
	return out, err
}

func (s *Store) InsertBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	err := s.write(ctx, func(d *dataset) error {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		if _, exists := d.brands[b.ID]; exists {
			return catalog.Constraintf("brand %s already exists", b.ID)
		}
		now := s.now()
		b.CreatedAt, b.UpdatedAt = now, now
		d.brands[b.ID] = b
		return nil
	})
	if err != nil {
		return catalog.Brand{}, err
	}
	return b, nil
}

func (s *Store) UpdateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.brands[b.ID]
		if !ok {
			return catalog.NotFoundf("brand %s", b.ID)
		}
		b.CreatedAt = existing.CreatedAt
		b.UpdatedAt = s.now()
		d.brands[b.ID] = b
		return nil
	})
	if err != nil {
		return catalog.Brand{}, err
	}
	return b, nil
}

// DeleteBrand removes the brand and clears it from every product.
func (s *Store) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.brands[id]; !ok {
			return catalog.NotFoundf("brand %s", id)
		}
		delete(d.brands, id)
		for pid, p := range d.products {
			if p.BrandID != nil && *p.BrandID == id {
				p.BrandID = nil
				d.products[pid] = p
			}
		}
		return nil
	})
}
