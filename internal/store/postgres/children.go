package postgres

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

const specColumns = `s.product_id, s.weight, s.color, s.dimensions, s.capacity, s.material,
	s.origin, s.size, s.wattage, s.voltage, s.special_features, s.created_at, s.updated_at`

func scanSpecification(row scanner) (catalog.Specification, error) {
	var s catalog.Specification
	err := row.Scan(
		&s.ProductID, &s.Weight, &s.Color, &s.Dimensions, &s.Capacity, &s.Material,
		&s.Origin, &s.Size, &s.Wattage, &s.Voltage, &s.SpecialFeatures, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (s *Store) GetSpecification(ctx context.Context, productID uuid.UUID) (catalog.Specification, error) {
	row := s.db.QueryRow(ctx, `SELECT `+specColumns+` FROM specifications s WHERE s.product_id = $1`, productID)
	spec, err := scanSpecification(row)
	if err != nil {
		return catalog.Specification{}, translate(err, fmt.Sprintf("specification for product %s", productID))
	}
	return spec, nil
}

func (s *Store) UpsertSpecification(ctx context.Context, spec catalog.Specification) (catalog.Specification, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO specifications AS s (product_id, weight, color, dimensions, capacity, material,
			origin, size, wattage, voltage, special_features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (product_id) DO UPDATE SET
			weight = EXCLUDED.weight, color = EXCLUDED.color, dimensions = EXCLUDED.dimensions,
			capacity = EXCLUDED.capacity, material = EXCLUDED.material, origin = EXCLUDED.origin,
			size = EXCLUDED.size, wattage = EXCLUDED.wattage, voltage = EXCLUDED.voltage,
			special_features = EXCLUDED.special_features, updated_at = now()
		RETURNING `+specColumns,
		spec.ProductID, spec.Weight, spec.Color, spec.Dimensions, spec.Capacity, spec.Material,
		spec.Origin, spec.Size, spec.Wattage, spec.Voltage, spec.SpecialFeatures,
	)
	out, err := scanSpecification(row)
	if err != nil {
		return catalog.Specification{}, translate(err, "upsert specification")
	}
	return out, nil
}

func (s *Store) DeleteSpecification(ctx context.Context, productID uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("specification for product %s", productID),
		`DELETE FROM specifications WHERE product_id = $1`, productID)
}

func (s *Store) DeleteAllSpecifications(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM specifications`)
	if err != nil {
		return 0, translate(err, "delete all specifications")
	}
	return tag.RowsAffected(), nil
}

const assetColumns = `a.id, a.product_id, a.file_name, a.type, a.extension, a.data, a.created_at, a.updated_at`

func scanAsset(row scanner) (catalog.Asset, error) {
	var a catalog.Asset
	err := row.Scan(&a.ID, &a.ProductID, &a.FileName, &a.Type, &a.Extension, &a.Data, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) GetAsset(ctx context.Context, productID uuid.UUID, assetID int64) (catalog.Asset, error) {
	row := s.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.id = $1 AND a.product_id = $2`, assetID, productID)
	a, err := scanAsset(row)
	if err != nil {
		return catalog.Asset{}, translate(err, fmt.Sprintf("asset %d for product %s", assetID, productID))
	}
	return a, nil
}

func (s *Store) ListAssets(ctx context.Context, productID uuid.UUID) ([]catalog.Asset, error) {
	return collect(ctx, s.db, "list assets", scanAsset,
		`SELECT `+assetColumns+` FROM assets a WHERE a.product_id = $1 ORDER BY a.id`, productID)
}

func (s *Store) InsertAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error) {
	data := a.Data
	if data == nil {
		data = []byte{}
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO assets AS a (product_id, file_name, type, extension, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+assetColumns,
		a.ProductID, a.FileName, a.Type, a.Extension, data,
	)
	out, err := scanAsset(row)
	if err != nil {
		return catalog.Asset{}, translate(err, "insert asset")
	}
	return out, nil
}

func (s *Store) UpdateAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error) {
	data := a.Data
	if data == nil {
		data = []byte{}
	}
	row := s.db.QueryRow(ctx, `
		UPDATE assets AS a SET file_name = $3, type = $4, extension = $5, data = $6, updated_at = now()
		WHERE a.id = $1 AND a.product_id = $2
		RETURNING `+assetColumns,
		a.ID, a.ProductID, a.FileName, a.Type, a.Extension, data,
	)
	out, err := scanAsset(row)
	if err != nil {
		return catalog.Asset{}, translate(err, fmt.Sprintf("asset %d for product %s", a.ID, a.ProductID))
	}
	return out, nil
}

func (s *Store) DeleteAsset(ctx context.Context, productID uuid.UUID, assetID int64) error {
	return execOne(ctx, s.db, fmt.Sprintf("asset %d for product %s", assetID, productID),
		`DELETE FROM assets WHERE id = $1 AND product_id = $2`, assetID, productID)
}

func (s *Store) DeleteAssetsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM assets WHERE product_id = $1`, productID)
	if err != nil {
		return 0, translate(err, "delete assets")
	}
	return tag.RowsAffected(), nil
}
