package postgres

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

const productColumns = `p.id, p.name, COALESCE(p.sku, ''), p.short_description, p.long_description,
	p.shipping_notes, p.warranty_info, p.visible_to_front_end, p.featured_product,
	p.category_id, p.brand_id, p.created_at, p.updated_at`

func scanProduct(row scanner) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.ShortDescription, &p.LongDescription,
		&p.ShippingNotes, &p.WarrantyInfo, &p.VisibleToFrontEnd, &p.FeaturedProduct,
		&p.CategoryID, &p.BrandID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// productSpecSelect reads products and their specifications in one statement
// so both halves come from the same snapshot.
const productSpecSelect = `SELECT ` + productColumns + `,
	s.product_id IS NOT NULL, COALESCE(s.weight, ''), COALESCE(s.color, ''), COALESCE(s.dimensions, ''),
	COALESCE(s.capacity, ''), COALESCE(s.material, ''), COALESCE(s.origin, ''), COALESCE(s.size, ''),
	COALESCE(s.wattage, ''), COALESCE(s.voltage, ''), COALESCE(s.special_features, ''),
	COALESCE(s.created_at, p.created_at), COALESCE(s.updated_at, p.updated_at)
	FROM products p LEFT JOIN specifications s ON s.product_id = p.id`

func scanProductWithSpec(row scanner) (catalog.Product, error) {
	var (
		p       catalog.Product
		spec    catalog.Specification
		hasSpec bool
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.ShortDescription, &p.LongDescription,
		&p.ShippingNotes, &p.WarrantyInfo, &p.VisibleToFrontEnd, &p.FeaturedProduct,
		&p.CategoryID, &p.BrandID, &p.CreatedAt, &p.UpdatedAt,
		&hasSpec, &spec.Weight, &spec.Color, &spec.Dimensions, &spec.Capacity, &spec.Material,
		&spec.Origin, &spec.Size, &spec.Wattage, &spec.Voltage, &spec.SpecialFeatures,
		&spec.CreatedAt, &spec.UpdatedAt,
	)
	if err != nil {
		return catalog.Product{}, err
	}
	if hasSpec {
		spec.ProductID = p.ID
		p.Specification = &spec
	}
	return p, nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (catalog.Product, error) {
	row := s.db.QueryRow(ctx, productSpecSelect+` WHERE p.id = $1`, id)
	p, err := scanProductWithSpec(row)
	if err != nil {
		return catalog.Product{}, translate(err, fmt.Sprintf("product %s", id))
	}
	return p, nil
}

func (s *Store) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, translate(err, "product exists")
	}
	return ok, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return collect(ctx, s.db, "list products", scanProductWithSpec,
		productSpecSelect+` ORDER BY p.created_at, p.id`)
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	return collect(ctx, s.db, "list products by category", scanProductWithSpec,
		productSpecSelect+` WHERE p.category_id = $1 ORDER BY p.created_at, p.id`, categoryID)
}

func (s *Store) ListProductsByBrand(ctx context.Context, brandID uuid.UUID) ([]catalog.Product, error) {
	return collect(ctx, s.db, "list products by brand", scanProductWithSpec,
		productSpecSelect+` WHERE p.brand_id = $1 ORDER BY p.created_at, p.id`, brandID)
}

func (s *Store) InsertProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO products AS p (id, name, sku, short_description, long_description, shipping_notes,
			warranty_info, visible_to_front_end, featured_product, category_id, brand_id)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+productColumns,
		p.ID, p.Name, p.SKU, p.ShortDescription, p.LongDescription, p.ShippingNotes,
		p.WarrantyInfo, p.VisibleToFrontEnd, p.FeaturedProduct, p.CategoryID, p.BrandID,
	)
	out, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, translate(err, "insert product")
	}
	return out, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE products AS p SET
			name = $2, sku = NULLIF($3, ''), short_description = $4, long_description = $5,
			shipping_notes = $6, warranty_info = $7, visible_to_front_end = $8,
			featured_product = $9, category_id = $10, brand_id = $11, updated_at = now()
		WHERE p.id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.SKU, p.ShortDescription, p.LongDescription, p.ShippingNotes,
		p.WarrantyInfo, p.VisibleToFrontEnd, p.FeaturedProduct, p.CategoryID, p.BrandID,
	)
	out, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, translate(err, fmt.Sprintf("product %s", p.ID))
	}
	return out, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("product %s", id), `DELETE FROM products WHERE id = $1`, id)
}

func (s *Store) DeleteAllProducts(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, translate(err, "delete all products")
	}
	return tag.RowsAffected(), nil
}
