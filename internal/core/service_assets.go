package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

// SaveAssets attaches files to a product. metas[i] describes files[i]; the
// two slices must be the same length. All assets are stored or none are.
func (s *Service) SaveAssets(ctx context.Context, productID uuid.UUID, metas []catalog.AssetMeta, files []catalog.UploadedFile) ([]catalog.Asset, error) {
	if len(metas) != len(files) {
		return nil, catalog.InvalidArgumentf("got %d asset descriptions for %d files", len(metas), len(files))
	}

	assets := make([]catalog.Asset, len(files))
	for i, f := range files {
		data, err := f.Bytes()
		if err != nil {
			return nil, catalog.Internal(fmt.Sprintf("read asset file %q", f.Name()), err)
		}
		m := metas[i]
		if m.FileName == "" {
			m.FileName = f.Name()
		}
		assets[i] = catalog.Asset{
			ProductID: productID,
			FileName:  m.FileName,
			Type:      m.Type,
			Extension: m.Extension,
			Data:      data,
		}
	}

	saved := make([]catalog.Asset, 0, len(assets))
	err := s.store.InTx(ctx, func(q store.Queries) error {
		exists, err := q.ProductExists(ctx, productID)
		if err != nil {
			return err
		}
		if !exists {
			return catalog.NotFoundf("product %s", productID)
		}
		for _, a := range assets {
			out, err := q.InsertAsset(ctx, a)
			if err != nil {
				return fmt.Errorf("insert asset %q: %w", a.FileName, err)
			}
			saved = append(saved, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ListAssets returns a product's assets in insertion order.
func (s *Service) ListAssets(ctx context.Context, productID uuid.UUID) ([]catalog.Asset, error) {
	return s.store.ListAssets(ctx, productID)
}

// GetAsset returns one asset including its payload.
func (s *Service) GetAsset(ctx context.Context, productID uuid.UUID, assetID int64) (catalog.Asset, error) {
	return s.store.GetAsset(ctx, productID, assetID)
}

// UpdateAsset replaces an asset's metadata, and its payload when file is non-nil.
func (s *Service) UpdateAsset(ctx context.Context, productID uuid.UUID, assetID int64, meta catalog.AssetMeta, file catalog.UploadedFile) (catalog.Asset, error) {
	var data []byte
	if file != nil {
		b, err := file.Bytes()
		if err != nil {
			return catalog.Asset{}, catalog.Internal(fmt.Sprintf("read asset file %q", file.Name()), err)
		}
		data = b
	}

	var out catalog.Asset
	err := s.store.InTx(ctx, func(q store.Queries) error {
		existing, err := q.GetAsset(ctx, productID, assetID)
		if err != nil {
			return err
		}
		existing.FileName = meta.FileName
		existing.Type = meta.Type
		existing.Extension = meta.Extension
		if file != nil {
			existing.Data = data
		}
		out, err = q.UpdateAsset(ctx, existing)
		return err
	})
	if err != nil {
		return catalog.Asset{}, err
	}
	return out, nil
}

// DeleteAsset removes one asset.
func (s *Service) DeleteAsset(ctx context.Context, productID uuid.UUID, assetID int64) error {
	return s.store.DeleteAsset(ctx, productID, assetID)
}

// DeleteAssetsByProduct removes every asset of a product and returns how many went.
func (s *Service) DeleteAssetsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.store.DeleteAssetsByProduct(ctx, productID)
}
