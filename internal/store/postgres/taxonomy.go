package postgres

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

const categoryColumns = `c.id, c.name, c.parent_category, c.description, c.sort_order, c.is_visible,
	c.smart_category, c.product_must_watch, c.created_at, c.updated_at`

func scanCategory(row scanner) (catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.ParentCategory, &c.Description, &c.SortOrder, &c.IsVisible,
		&c.SmartCategory, &c.ProductMustWatch, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (catalog.Category, error) {
	row := s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		return catalog.Category{}, translate(err, fmt.Sprintf("category %s", id))
	}
	return c, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (catalog.Category, error) {
	row := s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories c
		WHERE c.name = $1 ORDER BY c.created_at, c.id LIMIT 1`, name)
	c, err := scanCategory(row)
	if err != nil {
		return catalog.Category{}, translate(err, fmt.Sprintf("category %q", name))
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return collect(ctx, s.db, "list categories", scanCategory,
		`SELECT `+categoryColumns+` FROM categories c ORDER BY c.created_at, c.id`)
}

func (s *Store) InsertCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO categories AS c (id, name, parent_category, description, sort_order, is_visible,
			smart_category, product_must_watch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.ParentCategory, c.Description, c.SortOrder, c.IsVisible, c.SmartCategory, c.ProductMustWatch,
	)
	out, err := scanCategory(row)
	if err != nil {
		return catalog.Category{}, translate(err, "insert category")
	}
	return out, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE categories AS c SET name = $2, parent_category = $3, description = $4, sort_order = $5,
			is_visible = $6, smart_category = $7, product_must_watch = $8, updated_at = now()
		WHERE c.id = $1
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.ParentCategory, c.Description, c.SortOrder, c.IsVisible, c.SmartCategory, c.ProductMustWatch,
	)
	out, err := scanCategory(row)
	if err != nil {
		return catalog.Category{}, translate(err, fmt.Sprintf("category %s", c.ID))
	}
	return out, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("category %s", id), `DELETE FROM categories WHERE id = $1`, id)
}

const brandColumns = `b.id, b.name, b.description, b.assets, b.created_at, b.updated_at`

func scanBrand(row scanner) (catalog.Brand, error) {
	var b catalog.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Assets, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Store) GetBrand(ctx context.Context, id uuid.UUID) (catalog.Brand, error) {
	row := s.db.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands b WHERE b.id = $1`, id)
	b, err := scanBrand(row)
	if err != nil {
		return catalog.Brand{}, translate(err, fmt.Sprintf("brand %s", id))
	}
	return b, nil
}

func (s *Store) GetBrandByName(ctx context.Context, name string) (catalog.Brand, error) {
	row := s.db.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands b
		WHERE b.name = $1 ORDER BY b.created_at, b.id LIMIT 1`, name)
	b, err := scanBrand(row)
	if err != nil {
		return catalog.Brand{}, translate(err, fmt.Sprintf("brand %q", name))
	}
	return b, nil
}

func (s *Store) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	return collect(ctx, s.db, "list brands", scanBrand,
		`SELECT `+brandColumns+` FROM brands b ORDER BY b.created_at, b.id`)
}

func (s *Store) InsertBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO brands AS b (id, name, description, assets) VALUES ($1, $2, $3, $4)
		RETURNING `+brandColumns,
		b.ID, b.Name, b.Description, b.Assets,
	)
	out, err := scanBrand(row)
	if err != nil {
		return catalog.Brand{}, translate(err, "insert brand")
	}
	return out, nil
}

func (s *Store) UpdateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE brands AS b SET name = $2, description = $3, assets = $4, updated_at = now()
		WHERE b.id = $1
		RETURNING `+brandColumns,
		b.ID, b.Name, b.Description, b.Assets,
	)
	out, err := scanBrand(row)
	if err != nil {
		return catalog.Brand{}, translate(err, fmt.Sprintf("brand %s", b.ID))
	}
	return out, nil
}

func (s *Store) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("brand %s", id), `DELETE FROM brands WHERE id = $1`, id)
}
