package memory

import (
	"bytes"
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func (s *Store) GetSpecification(ctx context.Context, productID uuid.UUID) (catalog.Specification, error) {
	var spec catalog.Specification
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.specs[productID]
		if !ok {
			return catalog.NotFoundf("specification for product %s", productID)
		}
		spec = found
		return nil
	})
	return spec, err
}

func (s *Store) UpsertSpecification(ctx context.Context, spec catalog.Specification) (catalog.Specification, error) {
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[spec.ProductID]; !ok {
			return catalog.Constraintf("specification references missing product %s", spec.ProductID)
		}
		now := s.now()
		spec.CreatedAt = now
		if existing, ok := d.specs[spec.ProductID]; ok {
			spec.CreatedAt = existing.CreatedAt
		}
		spec.UpdatedAt = now
		d.specs[spec.ProductID] = spec
		return nil
	})
	if err != nil {
		return catalog.Specification{}, err
	}
	return spec, nil
}

func (s *Store) DeleteSpecification(ctx context.Context, productID uuid.UUID) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.specs[productID]; !ok {
			return catalog.NotFoundf("specification for product %s", productID)
		}
		delete(d.specs, productID)
		return nil
	})
}

func (s *Store) DeleteAllSpecifications(ctx context.Context) (int64, error) {
	var n int64
	err := s.write(ctx, func(d *dataset) error {
		n = int64(len(d.specs))
		clear(d.specs)
		return nil
	})
	return n, err
}

func assetLess(a, b catalog.Asset) bool { return a.ID < b.ID }

func (s *Store) GetAsset(ctx context.Context, productID uuid.UUID, assetID int64) (catalog.Asset, error) {
	var a catalog.Asset
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.assets[assetID]
		if !ok || found.ProductID != productID {
			return catalog.NotFoundf("asset %d for product %s", assetID, productID)
		}
		a = found
		return nil
	})
	return a, err
}

func (s *Store) ListAssets(ctx context.Context, productID uuid.UUID) ([]catalog.Asset, error) {
	var out []catalog.Asset
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.assets, func(a catalog.Asset) bool { return a.ProductID == productID }, assetLess)
		return nil
	})
	return out, err
}

func (s *Store) InsertAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error) {
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[a.ProductID]; !ok {
			return catalog.Constraintf("asset references missing product %s", a.ProductID)
		}
		d.lastAssetID++
		a.ID = d.lastAssetID
		a.Data = bytes.Clone(a.Data)
		now := s.now()
		a.CreatedAt, a.UpdatedAt = now, now
		d.assets[a.ID] = a
		return nil
	})
	if err != nil {
		return catalog.Asset{}, err
	}
	return a, nil
}

func (s *Store) UpdateAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error) {
	err := s.write(ctx, func(d *dataset) error {
		existing, ok := d.assets[a.ID]
		if !ok || existing.ProductID != a.ProductID {
			return catalog.NotFoundf("asset %d for product %s", a.ID, a.ProductID)
		}
		a.Data = bytes.Clone(a.Data)
		a.CreatedAt = existing.CreatedAt
		a.UpdatedAt = s.now()
		d.assets[a.ID] = a
		return nil
	})
	if err != nil {
		return catalog.Asset{}, err
	}
	return a, nil
}

func (s *Store) DeleteAsset(ctx context.Context, productID uuid.UUID, assetID int64) error {
	return s.write(ctx, func(d *dataset) error {
		existing, ok := d.assets[assetID]
		if !ok || existing.ProductID != productID {
			return catalog.NotFoundf("asset %d for product %s", assetID, productID)
		}
		delete(d.assets, assetID)
		return nil
	})
}

func (s *Store) DeleteAssetsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := s.write(ctx, func(d *dataset) error {
		for id, a := range d.assets {
			if a.ProductID == productID {
				delete(d.assets, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
